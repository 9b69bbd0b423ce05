package store

import (
	"context"
	"time"
)

// Store is the persistence contract shared by the postgres and sqlite
// backends. The search engine consumes only the Searcher subset; the rest
// serves the CLI and the MCP server.
type Store interface {
	Searcher

	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	CreateCampaign(ctx context.Context, name string) (int64, error)
	ListCampaigns(ctx context.Context) ([]Campaign, error)

	UpsertEntity(ctx context.Context, e EntityInput) (int64, error)
	RemoveEntity(ctx context.Context, campaignID int64, kind, name string) error
	GetEntity(ctx context.Context, campaignID int64, kind, name string) (*Entity, error)
	ListEntities(ctx context.Context, campaignID int64, kind string) ([]EntitySummary, error)
	UpsertRelation(ctx context.Context, campaignID int64, fromName, toName, label, notes string) error

	ListDanglingRelations(ctx context.Context, campaignID int64) ([]Relation, error)
	ListEntitiesWithAttributes(ctx context.Context, campaignID int64, kind string) ([]Entity, error)

	RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// Searcher is the read-only slice of the store the search engine depends on.
type Searcher interface {
	// KindID resolves a kind name ("item", "faction", ...) to its global id.
	KindID(ctx context.Context, name string) (int64, error)

	// SearchEntities runs an indexed full-text query. expr is a small
	// prefix/boolean mini-language: whitespace-separated tokens, each either
	// a bare term (exact) or "term*" (prefix), joined by AND / OR. Rows come
	// back ordered by native index relevance, best first, capped by the
	// backend. relationLabels names the one-hop joins to resolve into
	// CandidateRow.Related.
	SearchEntities(ctx context.Context, expr string, kindID, campaignID int64, relationLabels []string) ([]CandidateRow, error)

	// ScanEntities returns every non-deleted entity of the kind in the
	// campaign, ordered by name, with the same relation joins and a zero
	// relevance score.
	ScanEntities(ctx context.Context, kindID, campaignID int64, relationLabels []string) ([]CandidateRow, error)

	// LoadVocabulary returns the closed-category reference data. Loaded once
	// at process start; the engine treats it as immutable afterwards.
	LoadVocabulary(ctx context.Context) ([]VocabularyEntry, error)
}

type Campaign struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

type EntityInput struct {
	CampaignID  int64
	Kind        string
	Name        string
	Description string
	Attributes  map[string]any
}

type Entity struct {
	ID          int64
	CampaignID  int64
	Kind        string
	Name        string
	Description string
	Attributes  map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type EntitySummary struct {
	ID   int64
	Kind string
	Name string
}

type Relation struct {
	FromID   int64
	FromName string
	ToID     int64
	ToName   string
	Label    string
	Notes    string
}

// CandidateRow is one pre-filtered search candidate. Related maps a relation
// label to the display names of all entities reachable by that label from
// the candidate, joined with ", ". Attributes stays raw JSON until the
// engine decides the candidate survives.
type CandidateRow struct {
	ID          int64
	Name        string
	Description string
	Attributes  []byte
	Relevance   float64
	Related     map[string]string
}

type VocabularyEntry struct {
	Category     string
	CanonicalKey string
	Locale       string
	DisplayName  string
}

// RelatedNameSeparator joins multiple related-entity names into one
// CandidateRow.Related value. The engine splits on it when it needs to test
// names individually.
const RelatedNameSeparator = ", "

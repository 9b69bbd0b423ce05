package search

import (
	"context"
	"log/slog"

	"chronicle/internal/store"
)

const (
	// maxResults caps the list returned to the caller.
	maxResults = 50
	// maxCandidates bounds the pool handed to the scorer.
	maxCandidates = 200
)

// Engine is the hybrid lexical/fuzzy search pipeline. It is stateless apart
// from the immutable vocabulary, so one Engine serves concurrent searches
// across campaigns without synchronization.
type Engine struct {
	backend store.Searcher
	vocab   *Vocabulary
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func NewEngine(backend store.Searcher, vocab *Vocabulary, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		vocab:   vocab,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request is one search call.
type Request struct {
	CampaignID int64
	Kind       Kind
	Query      string
	Locale     string
}

// Result is one ranked hit with all scoring internals stripped and the
// attribute blob decoded.
type Result struct {
	ID          int64
	Name        string
	Description string
	Attributes  map[string]any
	Related     map[string]string
}

// Search runs the full pipeline: parse, vocabulary expansion, staged
// retrieval, scoring, boolean filtering, truncation. It is best-effort:
// storage and index failures are logged and degrade to fewer or no results,
// never to an error. An empty or whitespace-only query lists the campaign's
// entities of that kind ordered by name.
func (e *Engine) Search(ctx context.Context, req Request) []Result {
	parsed := ParseQuery(req.Query)
	labels := req.Kind.relationLabels()

	kindID, err := e.backend.KindID(ctx, req.Kind.Name)
	if err != nil {
		e.logger.Error("search: resolving kind", "kind", req.Kind.Name, "err", err)
		return nil
	}

	if len(parsed.Terms) == 0 {
		rows, err := e.backend.ScanEntities(ctx, kindID, req.CampaignID, labels)
		if err != nil {
			e.logger.Error("search: listing entities", "kind", req.Kind.Name, "err", err)
			return nil
		}
		return e.assembleRows(rows, req.Kind)
	}

	terms := e.expandTerms(parsed.Terms, req.Locale, req.Kind)
	negated := e.expandTerms(parsed.Negated, req.Locale, req.Kind)

	rows := e.retrieve(ctx, parsed, terms, kindID, req.CampaignID, labels)
	if len(rows) > maxCandidates {
		rows = rows[:maxCandidates]
	}

	cands := scoreCandidates(rows, terms, req.Kind)
	cands = filterCandidates(cands, parsed.Op, terms, negated)
	sortCandidates(cands)
	if len(cands) > maxResults {
		cands = cands[:maxResults]
	}

	return assemble(cands)
}

// expandTerms resolves each folded term against the kind's vocabularies.
// A resolved term is replaced by its canonical key, because the stored data
// holds the key, not the localized word.
func (e *Engine) expandTerms(raw []string, locale string, kind Kind) []Term {
	terms := make([]Term, 0, len(raw))
	for _, r := range raw {
		t := Term{Raw: r, Variant: r}
		if len(kind.Vocabularies) > 0 {
			res := e.vocab.Resolve(r, locale, kind.Vocabularies)
			if res.Resolved {
				t.Variant = res.Key
				t.ResolvedKey = true
			}
			t.LocaleAmbiguous = res.Ambiguous
		}
		terms = append(terms, t)
	}
	return terms
}

// retrieve is the three-attempt state machine. Attempts run strictly in
// sequence; each later one only runs when the earlier ones were inapplicable
// or empty. Index failures degrade to zero candidates and fall through.
func (e *Engine) retrieve(ctx context.Context, parsed ParsedQuery, terms []Term, kindID, campaignID int64, labels []string) []store.CandidateRow {
	if parsed.HasOperators() {
		// Boolean combination through the inverted index is unreliable with
		// this expression construction, so operator queries scan everything
		// and let the scorer do the filtering.
		rows, err := e.backend.ScanEntities(ctx, kindID, campaignID, labels)
		if err != nil {
			e.logger.Error("search: operator scan", "err", err)
			return nil
		}
		return rows
	}

	expr := indexExpression(terms, parsed.Op, !parsed.UseExactFirstAttempt)
	rows, err := e.backend.SearchEntities(ctx, expr, kindID, campaignID, labels)
	if err != nil {
		e.logger.Warn("search: indexed query", "expr", expr, "err", err)
		rows = nil
	}

	if len(rows) == 0 && parsed.UseExactFirstAttempt {
		expr = indexExpression(terms, parsed.Op, true)
		rows, err = e.backend.SearchEntities(ctx, expr, kindID, campaignID, labels)
		if err != nil {
			e.logger.Warn("search: prefix retry", "expr", expr, "err", err)
			rows = nil
		}
	}

	if len(rows) == 0 {
		rows, err = e.backend.ScanEntities(ctx, kindID, campaignID, labels)
		if err != nil {
			e.logger.Error("search: fallback scan", "err", err)
			return nil
		}
	}

	return rows
}

func (e *Engine) assembleRows(rows []store.CandidateRow, kind Kind) []Result {
	if len(rows) > maxResults {
		rows = rows[:maxResults]
	}
	cands := make([]candidate, 0, len(rows))
	for _, row := range rows {
		cands = append(cands, newCandidate(row, kind))
	}
	return assemble(cands)
}

// assemble strips scoring state and returns the public result shape.
func assemble(cands []candidate) []Result {
	results := make([]Result, 0, len(cands))
	for i := range cands {
		c := &cands[i]
		r := Result{
			ID:          c.row.ID,
			Name:        c.row.Name,
			Description: c.row.Description,
			Attributes:  c.attrs,
		}
		if len(c.row.Related) > 0 {
			r.Related = make(map[string]string, len(c.row.Related))
			for label, names := range c.row.Related {
				if names != "" {
					r.Related[label] = names
				}
			}
		}
		results = append(results, r)
	}
	return results
}

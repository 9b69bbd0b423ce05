package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"chronicle/internal/search"
	"chronicle/internal/store"
)

// Server exposes the campaign store and the search engine as MCP tools.
type Server struct {
	db     store.Store
	engine *search.Engine
	kinds  map[string]search.Kind
	locale string
}

func NewServer(db store.Store, engine *search.Engine, locale string) *Server {
	return &Server{
		db:     db,
		engine: engine,
		kinds:  search.Kinds(),
		locale: locale,
	}
}

type searchInput struct {
	Campaign string `json:"campaign" jsonschema:"the campaign name"`
	Kind     string `json:"kind" jsonschema:"entity kind: npc, location, item, faction, lore or player"`
	Query    string `json:"query" jsonschema:"free-text query; supports AND, OR and NOT"`
	Locale   string `json:"locale,omitempty" jsonschema:"vocabulary locale, de or en"`
}

type searchOutput struct {
	Results []search.Result `json:"results"`
}

type getEntityInput struct {
	Campaign string `json:"campaign" jsonschema:"the campaign name"`
	Kind     string `json:"kind" jsonschema:"entity kind"`
	Name     string `json:"name" jsonschema:"entity name"`
}

type getEntityOutput struct {
	Entity *store.Entity `json:"entity"`
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport, version string) error {
	server := sdk.NewServer(&sdk.Implementation{Name: "chronicle", Version: version}, nil)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "search_entities",
		Description: "Search a campaign's entities by name, description, attributes and related-entity names.",
	}, s.searchEntities)

	sdk.AddTool(server, &sdk.Tool{
		Name:        "get_entity",
		Description: "Fetch one entity by campaign, kind and name.",
	}, s.getEntity)

	return server.Run(ctx, transport)
}

func (s *Server) searchEntities(ctx context.Context, req *sdk.CallToolRequest, in searchInput) (*sdk.CallToolResult, searchOutput, error) {
	campaignID, err := s.campaignID(ctx, in.Campaign)
	if err != nil {
		return nil, searchOutput{}, err
	}

	kind, ok := s.kinds[in.Kind]
	if !ok {
		return nil, searchOutput{}, fmt.Errorf("unknown entity kind: %s", in.Kind)
	}

	locale := in.Locale
	if locale == "" {
		locale = s.locale
	}

	results := s.engine.Search(ctx, search.Request{
		CampaignID: campaignID,
		Kind:       kind,
		Query:      in.Query,
		Locale:     locale,
	})
	if results == nil {
		results = []search.Result{}
	}
	return nil, searchOutput{Results: results}, nil
}

func (s *Server) getEntity(ctx context.Context, req *sdk.CallToolRequest, in getEntityInput) (*sdk.CallToolResult, getEntityOutput, error) {
	campaignID, err := s.campaignID(ctx, in.Campaign)
	if err != nil {
		return nil, getEntityOutput{}, err
	}

	entity, err := s.db.GetEntity(ctx, campaignID, in.Kind, in.Name)
	if err != nil {
		return nil, getEntityOutput{}, err
	}
	return nil, getEntityOutput{Entity: entity}, nil
}

func (s *Server) campaignID(ctx context.Context, name string) (int64, error) {
	campaigns, err := s.db.ListCampaigns(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing campaigns: %w", err)
	}
	for _, c := range campaigns {
		if c.Name == name {
			return c.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown campaign: %s", name)
}

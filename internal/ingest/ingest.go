package ingest

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"chronicle/internal/store"
)

// SeedFile is the YAML format consumed by "chronicle ingest": one campaign
// with its entities and name-addressed relations.
type SeedFile struct {
	Campaign  string         `yaml:"campaign"`
	Entities  []SeedEntity   `yaml:"entities"`
	Relations []SeedRelation `yaml:"relations"`
}

type SeedEntity struct {
	Kind        string         `yaml:"kind"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Attributes  map[string]any `yaml:"attributes"`
}

type SeedRelation struct {
	From  string `yaml:"from"`
	To    string `yaml:"to"`
	Label string `yaml:"label"`
	Notes string `yaml:"notes"`
}

type Result struct {
	CampaignID        int64
	EntitiesUpserted  int
	RelationsUpserted int
	Errors            []error
}

// Run loads a seed file into the store. Entities load before relations so
// relations can address their endpoints by name. Individual failures are
// collected, not fatal: a seed file should load as far as it can.
func Run(ctx context.Context, db store.Store, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	if err := validateSeed(&seed); err != nil {
		return nil, fmt.Errorf("validating seed file: %w", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	campaignID, err := db.CreateCampaign(ctx, seed.Campaign)
	if err != nil {
		return nil, fmt.Errorf("creating campaign: %w", err)
	}

	result := &Result{CampaignID: campaignID}

	for _, e := range seed.Entities {
		input := store.EntityInput{
			CampaignID:  campaignID,
			Kind:        e.Kind,
			Name:        e.Name,
			Description: e.Description,
			Attributes:  e.Attributes,
		}
		if _, err := db.UpsertEntity(ctx, input); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("entity %q: %w", e.Name, err))
			continue
		}
		result.EntitiesUpserted++
	}

	for _, r := range seed.Relations {
		if err := db.UpsertRelation(ctx, campaignID, r.From, r.To, r.Label, r.Notes); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("relation %s -[%s]-> %s: %w", r.From, r.Label, r.To, err))
			continue
		}
		result.RelationsUpserted++
	}

	return result, nil
}

func validateSeed(seed *SeedFile) error {
	if strings.TrimSpace(seed.Campaign) == "" {
		return fmt.Errorf("campaign name is required")
	}
	for i, e := range seed.Entities {
		if strings.TrimSpace(e.Name) == "" {
			return fmt.Errorf("entity %d name is required", i)
		}
		if strings.TrimSpace(e.Kind) == "" {
			return fmt.Errorf("entity %q kind is required", e.Name)
		}
	}
	for i, r := range seed.Relations {
		if strings.TrimSpace(r.From) == "" || strings.TrimSpace(r.To) == "" {
			return fmt.Errorf("relation %d endpoints are required", i)
		}
		if strings.TrimSpace(r.Label) == "" {
			return fmt.Errorf("relation %d label is required", i)
		}
	}
	return nil
}

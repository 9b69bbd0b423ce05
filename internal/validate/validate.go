package validate

import (
	"context"
	"fmt"

	"chronicle/internal/search"
	"chronicle/internal/store"
)

// Finding is one consistency problem in a campaign's data.
type Finding struct {
	Kind    string
	Subject string
	Detail  string
}

// Run checks one campaign for data problems that silently weaken search:
// relations pointing at soft-deleted entities, and item category attributes
// holding localized words instead of canonical keys.
func Run(ctx context.Context, db store.Store, vocab *search.Vocabulary, campaignID int64) ([]Finding, error) {
	var findings []Finding

	dangling, err := db.ListDanglingRelations(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("checking relations: %w", err)
	}
	for _, r := range dangling {
		findings = append(findings, Finding{
			Kind:    "dangling-relation",
			Subject: r.FromName,
			Detail:  fmt.Sprintf("relation %q points at deleted entity %q", r.Label, r.ToName),
		})
	}

	items, err := db.ListEntitiesWithAttributes(ctx, campaignID, "item")
	if err != nil {
		return nil, fmt.Errorf("checking item attributes: %w", err)
	}
	for _, item := range items {
		for _, category := range []string{search.CategoryType, search.CategoryRarity} {
			value, ok := item.Attributes[category].(string)
			if !ok || value == "" {
				continue
			}
			if !vocab.IsCanonicalKey(category, value) {
				findings = append(findings, Finding{
					Kind:    "non-canonical-attribute",
					Subject: item.Name,
					Detail:  fmt.Sprintf("attribute %q holds %q, which is not a canonical key", category, value),
				})
			}
		}
	}

	return findings, nil
}

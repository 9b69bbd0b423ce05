package postgres

import (
	"context"
	"fmt"

	"chronicle/internal/store"
)

// ListDanglingRelations returns relations whose target entity has been soft
// deleted. Such relations no longer contribute to search-by-proxy and should
// be repointed or removed.
func (c *Client) ListDanglingRelations(ctx context.Context, campaignID int64) ([]store.Relation, error) {
	query := `
SELECT r.from_entity_id, f.name, r.to_entity_id, t.name, r.label, r.notes
FROM entity_relations r
JOIN entities f ON f.id = r.from_entity_id
JOIN entities t ON t.id = r.to_entity_id
WHERE f.campaign_id = $1
  AND f.deleted_at IS NULL
  AND t.deleted_at IS NOT NULL
ORDER BY f.name, r.label, t.name
`

	rows, err := c.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("listing dangling relations: %w", err)
	}
	defer rows.Close()

	var relations []store.Relation
	for rows.Next() {
		var r store.Relation
		if err := rows.Scan(&r.FromID, &r.FromName, &r.ToID, &r.ToName, &r.Label, &r.Notes); err != nil {
			return nil, fmt.Errorf("scanning relation: %w", err)
		}
		relations = append(relations, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating relations: %w", err)
	}
	if relations == nil {
		relations = []store.Relation{}
	}
	return relations, nil
}

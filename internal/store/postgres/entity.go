package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"chronicle/internal/store"
)

func (c *Client) KindID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := c.pool.QueryRow(ctx, "SELECT id FROM entity_kinds WHERE name = $1", name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolving kind %q: %w", name, err)
	}
	return id, nil
}

func (c *Client) CreateCampaign(ctx context.Context, name string) (int64, error) {
	var id int64
	err := c.pool.QueryRow(ctx,
		`INSERT INTO campaigns (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating campaign: %w", err)
	}
	return id, nil
}

func (c *Client) ListCampaigns(ctx context.Context) ([]store.Campaign, error) {
	rows, err := c.pool.Query(ctx, "SELECT id, name, created_at FROM campaigns ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []store.Campaign
	for rows.Next() {
		var cp store.Campaign
		if err := rows.Scan(&cp.ID, &cp.Name, &cp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning campaign: %w", err)
		}
		campaigns = append(campaigns, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating campaigns: %w", err)
	}
	if campaigns == nil {
		campaigns = []store.Campaign{}
	}
	return campaigns, nil
}

func (c *Client) UpsertEntity(ctx context.Context, e store.EntityInput) (int64, error) {
	kindID, err := c.KindID(ctx, e.Kind)
	if err != nil {
		return 0, err
	}

	attrsJSON, err := json.Marshal(e.Attributes)
	if err != nil {
		return 0, fmt.Errorf("marshaling attributes: %w", err)
	}
	attrText := store.AttributeText(e.Attributes)

	// The 'simple' text search configuration skips stemming, which keeps
	// bilingual de/en content matchable by prefix in both languages.
	query := `
INSERT INTO entities (campaign_id, kind_id, name, name_normalized, description, attributes, updated_at, deleted_at, search_vector)
VALUES ($1, $2, $3, $4, $5, $6, now(), NULL,
    setweight(to_tsvector('simple', coalesce($3, '')), 'A') ||
    setweight(to_tsvector('simple', coalesce($5, '')), 'B') ||
    setweight(to_tsvector('simple', coalesce($7, '')), 'C')
)
ON CONFLICT (campaign_id, kind_id, name_normalized) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    attributes = EXCLUDED.attributes,
    updated_at = now(),
    deleted_at = NULL,
    search_vector = EXCLUDED.search_vector
RETURNING id
`

	var id int64
	err = c.pool.QueryRow(ctx, query,
		e.CampaignID,
		kindID,
		e.Name,
		strings.ToLower(e.Name),
		e.Description,
		attrsJSON,
		attrText,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting entity: %w", err)
	}
	return id, nil
}

func (c *Client) RemoveEntity(ctx context.Context, campaignID int64, kind, name string) error {
	kindID, err := c.KindID(ctx, kind)
	if err != nil {
		return err
	}

	tag, err := c.pool.Exec(ctx,
		`UPDATE entities SET deleted_at = now(), updated_at = now()
WHERE campaign_id = $1 AND kind_id = $2 AND name_normalized = $3 AND deleted_at IS NULL`,
		campaignID, kindID, strings.ToLower(name))
	if err != nil {
		return fmt.Errorf("removing entity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entity %q not found", name)
	}
	return nil
}

func (c *Client) GetEntity(ctx context.Context, campaignID int64, kind, name string) (*store.Entity, error) {
	kindID, err := c.KindID(ctx, kind)
	if err != nil {
		return nil, err
	}

	query := `
SELECT id, campaign_id, name, description, attributes, created_at, updated_at
FROM entities
WHERE campaign_id = $1 AND kind_id = $2 AND name_normalized = $3 AND deleted_at IS NULL
`

	var e store.Entity
	var attrsBytes []byte
	err = c.pool.QueryRow(ctx, query, campaignID, kindID, strings.ToLower(name)).Scan(
		&e.ID, &e.CampaignID, &e.Name, &e.Description, &attrsBytes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting entity: %w", err)
	}
	e.Kind = kind

	if len(attrsBytes) > 0 {
		if err := json.Unmarshal(attrsBytes, &e.Attributes); err != nil {
			return nil, fmt.Errorf("unmarshaling attributes: %w", err)
		}
	}
	if e.Attributes == nil {
		e.Attributes = map[string]any{}
	}

	return &e, nil
}

func (c *Client) ListEntities(ctx context.Context, campaignID int64, kind string) ([]store.EntitySummary, error) {
	query := `
SELECT e.id, k.name, e.name
FROM entities e
JOIN entity_kinds k ON k.id = e.kind_id
WHERE e.campaign_id = $1
  AND ($2 = '' OR k.name = $2)
  AND e.deleted_at IS NULL
ORDER BY k.name, e.name
`

	rows, err := c.pool.Query(ctx, query, campaignID, kind)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var summaries []store.EntitySummary
	for rows.Next() {
		var s store.EntitySummary
		if err := rows.Scan(&s.ID, &s.Kind, &s.Name); err != nil {
			return nil, fmt.Errorf("scanning entity summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entity summaries: %w", err)
	}
	if summaries == nil {
		summaries = []store.EntitySummary{}
	}
	return summaries, nil
}

func (c *Client) ListEntitiesWithAttributes(ctx context.Context, campaignID int64, kind string) ([]store.Entity, error) {
	query := `
SELECT e.id, e.campaign_id, k.name, e.name, e.description, e.attributes, e.created_at, e.updated_at
FROM entities e
JOIN entity_kinds k ON k.id = e.kind_id
WHERE e.campaign_id = $1
  AND ($2 = '' OR k.name = $2)
  AND e.deleted_at IS NULL
ORDER BY e.name
`

	rows, err := c.pool.Query(ctx, query, campaignID, kind)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var entities []store.Entity
	for rows.Next() {
		var e store.Entity
		var attrsBytes []byte
		err := rows.Scan(&e.ID, &e.CampaignID, &e.Kind, &e.Name, &e.Description, &attrsBytes, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		if len(attrsBytes) > 0 {
			if err := json.Unmarshal(attrsBytes, &e.Attributes); err != nil {
				return nil, fmt.Errorf("unmarshaling attributes: %w", err)
			}
		}
		if e.Attributes == nil {
			e.Attributes = map[string]any{}
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}
	if entities == nil {
		entities = []store.Entity{}
	}
	return entities, nil
}

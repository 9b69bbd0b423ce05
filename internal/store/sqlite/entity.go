package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"chronicle/internal/store"
)

const sqliteTimeLayout = "2006-01-02 15:04:05"

func parseTime(s string) time.Time {
	t, err := time.Parse(sqliteTimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func (c *Client) KindID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := c.db.QueryRowContext(ctx, "SELECT id FROM entity_kinds WHERE name = ?", name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolving kind %q: %w", name, err)
	}
	return id, nil
}

func (c *Client) CreateCampaign(ctx context.Context, name string) (int64, error) {
	_, err := c.db.ExecContext(ctx,
		"INSERT INTO campaigns (name) VALUES (?) ON CONFLICT (name) DO NOTHING", name)
	if err != nil {
		return 0, fmt.Errorf("creating campaign: %w", err)
	}

	var id int64
	err = c.db.QueryRowContext(ctx, "SELECT id FROM campaigns WHERE name = ?", name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating campaign: %w", err)
	}
	return id, nil
}

func (c *Client) ListCampaigns(ctx context.Context) ([]store.Campaign, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT id, name, created_at FROM campaigns ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []store.Campaign
	for rows.Next() {
		var cp store.Campaign
		var createdAt string
		if err := rows.Scan(&cp.ID, &cp.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning campaign: %w", err)
		}
		cp.CreatedAt = parseTime(createdAt)
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

	query := `
	INSERT INTO entities (campaign_id, kind_id, name, name_normalized, description, attributes, attr_text, updated_at, deleted_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, datetime('now'), NULL)
	ON CONFLICT (campaign_id, kind_id, name_normalized) DO UPDATE SET
		name = excluded.name,
		description = excluded.description,
		attributes = excluded.attributes,
		attr_text = excluded.attr_text,
		updated_at = datetime('now'),
		deleted_at = NULL
	`

	_, err = c.db.ExecContext(ctx, query,
		e.CampaignID,
		kindID,
		e.Name,
		strings.ToLower(e.Name),
		e.Description,
		attrsJSON,
		attrText,
	)
	if err != nil {
		return 0, fmt.Errorf("upserting entity: %w", err)
	}

	var id int64
	err = c.db.QueryRowContext(ctx,
		"SELECT id FROM entities WHERE campaign_id = ? AND kind_id = ? AND name_normalized = ?",
		e.CampaignID, kindID, strings.ToLower(e.Name)).Scan(&id)
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

	res, err := c.db.ExecContext(ctx,
		`UPDATE entities SET deleted_at = datetime('now'), updated_at = datetime('now')
WHERE campaign_id = ? AND kind_id = ? AND name_normalized = ? AND deleted_at IS NULL`,
		campaignID, kindID, strings.ToLower(name))
	if err != nil {
		return fmt.Errorf("removing entity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing entity: %w", err)
	}
	if affected == 0 {
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
	WHERE campaign_id = ? AND kind_id = ? AND name_normalized = ? AND deleted_at IS NULL
	`

	var e store.Entity
	var attrsBytes []byte
	var createdAt, updatedAt string
	err = c.db.QueryRowContext(ctx, query, campaignID, kindID, strings.ToLower(name)).Scan(
		&e.ID, &e.CampaignID, &e.Name, &e.Description, &attrsBytes, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("entity %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("getting entity: %w", err)
	}
	e.Kind = kind
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)

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
	WHERE e.campaign_id = ?
	  AND (? = '' OR k.name = ?)
	  AND e.deleted_at IS NULL
	ORDER BY k.name, e.name
	`

	rows, err := c.db.QueryContext(ctx, query, campaignID, kind, kind)
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
	WHERE e.campaign_id = ?
	  AND (? = '' OR k.name = ?)
	  AND e.deleted_at IS NULL
	ORDER BY e.name
	`

	rows, err := c.db.QueryContext(ctx, query, campaignID, kind, kind)
	if err != nil {
		return nil, fmt.Errorf("listing entities: %w", err)
	}
	defer rows.Close()

	var entities []store.Entity
	for rows.Next() {
		var e store.Entity
		var attrsBytes []byte
		var createdAt, updatedAt string
		err := rows.Scan(&e.ID, &e.CampaignID, &e.Kind, &e.Name, &e.Description, &attrsBytes, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		e.UpdatedAt = parseTime(updatedAt)
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

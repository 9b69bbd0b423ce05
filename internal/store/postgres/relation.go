package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var labelPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func (c *Client) UpsertRelation(ctx context.Context, campaignID int64, fromName, toName, label, notes string) error {
	if !labelPattern.MatchString(label) {
		return fmt.Errorf("invalid relation label: %s", label)
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var fromID int64
	err = tx.QueryRow(ctx,
		"SELECT id FROM entities WHERE campaign_id = $1 AND name_normalized = $2 AND deleted_at IS NULL",
		campaignID, strings.ToLower(fromName),
	).Scan(&fromID)
	if err != nil {
		return fmt.Errorf("finding source entity %q: %w", fromName, err)
	}

	var toID int64
	err = tx.QueryRow(ctx,
		"SELECT id FROM entities WHERE campaign_id = $1 AND name_normalized = $2 AND deleted_at IS NULL",
		campaignID, strings.ToLower(toName),
	).Scan(&toID)
	if err != nil {
		return fmt.Errorf("finding target entity %q: %w", toName, err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO entity_relations (from_entity_id, to_entity_id, label, notes)
VALUES ($1, $2, $3, $4)
ON CONFLICT (from_entity_id, to_entity_id, label) DO UPDATE SET notes = EXCLUDED.notes`,
		fromID, toID, label, notes,
	)
	if err != nil {
		return fmt.Errorf("upserting relation: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

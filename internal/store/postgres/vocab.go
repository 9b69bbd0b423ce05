package postgres

import (
	"context"
	"fmt"

	"chronicle/internal/store"
)

func (c *Client) seedVocabulary(ctx context.Context) error {
	for _, e := range store.DefaultVocabulary() {
		_, err := c.pool.Exec(ctx,
			`INSERT INTO vocabulary (category, canonical_key, locale, display_name)
VALUES ($1, $2, $3, $4)
ON CONFLICT (category, canonical_key, locale) DO UPDATE SET display_name = EXCLUDED.display_name`,
			e.Category, e.CanonicalKey, e.Locale, e.DisplayName,
		)
		if err != nil {
			return fmt.Errorf("seeding vocabulary: %w", err)
		}
	}
	return nil
}

func (c *Client) LoadVocabulary(ctx context.Context) ([]store.VocabularyEntry, error) {
	rows, err := c.pool.Query(ctx,
		"SELECT category, canonical_key, locale, display_name FROM vocabulary ORDER BY category, canonical_key, locale")
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary: %w", err)
	}
	defer rows.Close()

	var entries []store.VocabularyEntry
	for rows.Next() {
		var e store.VocabularyEntry
		if err := rows.Scan(&e.Category, &e.CanonicalKey, &e.Locale, &e.DisplayName); err != nil {
			return nil, fmt.Errorf("scanning vocabulary entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vocabulary: %w", err)
	}

	return entries, nil
}

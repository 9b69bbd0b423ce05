package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	// All DDL runs in one call, which PostgreSQL executes atomically within
	// an implicit transaction. "IF NOT EXISTS" keeps this idempotent; a real
	// migration tool becomes worthwhile once destructive changes appear.
	ddl := `
CREATE TABLE IF NOT EXISTS campaigns (
    id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    name       TEXT NOT NULL UNIQUE,
    created_at TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE IF NOT EXISTS entity_kinds (
    id   BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

INSERT INTO entity_kinds (name)
VALUES ('npc'), ('location'), ('item'), ('faction'), ('lore'), ('player')
ON CONFLICT (name) DO NOTHING;

CREATE TABLE IF NOT EXISTS entities (
    id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    campaign_id     BIGINT NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
    kind_id         BIGINT NOT NULL REFERENCES entity_kinds(id),
    name            TEXT NOT NULL,
    name_normalized TEXT NOT NULL,
    description     TEXT DEFAULT '',
    attributes      JSONB DEFAULT '{}',
    created_at      TIMESTAMPTZ DEFAULT now(),
    updated_at      TIMESTAMPTZ DEFAULT now(),
    deleted_at      TIMESTAMPTZ,
    CONSTRAINT uq_entity_campaign_kind_name UNIQUE (campaign_id, kind_id, name_normalized)
);

ALTER TABLE entities ADD COLUMN IF NOT EXISTS search_vector TSVECTOR;

CREATE TABLE IF NOT EXISTS entity_relations (
    id             BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    from_entity_id BIGINT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
    to_entity_id   BIGINT NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
    label          TEXT NOT NULL,
    notes          TEXT DEFAULT '',
    CONSTRAINT uq_relation UNIQUE (from_entity_id, to_entity_id, label)
);

CREATE TABLE IF NOT EXISTS vocabulary (
    id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    category      TEXT NOT NULL,
    canonical_key TEXT NOT NULL,
    locale        TEXT NOT NULL,
    display_name  TEXT NOT NULL,
    CONSTRAINT uq_vocab UNIQUE (category, canonical_key, locale)
);

CREATE INDEX IF NOT EXISTS idx_entities_search ON entities USING GIN (search_vector);
CREATE INDEX IF NOT EXISTS idx_entities_campaign_kind ON entities (campaign_id, kind_id);
CREATE INDEX IF NOT EXISTS idx_entities_name_norm ON entities (name_normalized);
CREATE INDEX IF NOT EXISTS idx_entities_deleted ON entities (deleted_at) WHERE deleted_at IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_relations_from ON entity_relations (from_entity_id);
CREATE INDEX IF NOT EXISTS idx_relations_to ON entity_relations (to_entity_id);
CREATE INDEX IF NOT EXISTS idx_relations_from_label ON entity_relations (from_entity_id, label);
CREATE INDEX IF NOT EXISTS idx_vocab_locale ON vocabulary (locale);
`
	if _, err := c.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}

	if err := c.seedVocabulary(ctx); err != nil {
		return err
	}
	return nil
}

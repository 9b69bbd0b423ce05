package sqlite

import (
	"context"
	"fmt"
	"strings"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS campaigns (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS entity_kinds (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	);

	INSERT OR IGNORE INTO entity_kinds (name)
	VALUES ('npc'), ('location'), ('item'), ('faction'), ('lore'), ('player');

	CREATE TABLE IF NOT EXISTS entities (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		campaign_id     INTEGER NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
		kind_id         INTEGER NOT NULL REFERENCES entity_kinds(id),
		name            TEXT NOT NULL,
		name_normalized TEXT NOT NULL,
		description     TEXT DEFAULT '',
		attributes      TEXT DEFAULT '{}',
		attr_text       TEXT DEFAULT '',
		created_at      TEXT DEFAULT (datetime('now')),
		updated_at      TEXT DEFAULT (datetime('now')),
		deleted_at      TEXT,
		CONSTRAINT uq_entity_campaign_kind_name UNIQUE (campaign_id, kind_id, name_normalized)
	);

	CREATE TABLE IF NOT EXISTS entity_relations (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		from_entity_id INTEGER NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
		to_entity_id   INTEGER NOT NULL REFERENCES entities(id) ON DELETE CASCADE,
		label          TEXT NOT NULL,
		notes          TEXT DEFAULT '',
		CONSTRAINT uq_relation UNIQUE (from_entity_id, to_entity_id, label)
	);

	CREATE TABLE IF NOT EXISTS vocabulary (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		category      TEXT NOT NULL,
		canonical_key TEXT NOT NULL,
		locale        TEXT NOT NULL,
		display_name  TEXT NOT NULL,
		CONSTRAINT uq_vocab UNIQUE (category, canonical_key, locale)
	);

	CREATE INDEX IF NOT EXISTS idx_entities_campaign_kind ON entities (campaign_id, kind_id);
	CREATE INDEX IF NOT EXISTS idx_entities_name_norm ON entities (name_normalized);
	CREATE INDEX IF NOT EXISTS idx_relations_from ON entity_relations (from_entity_id);
	CREATE INDEX IF NOT EXISTS idx_relations_to ON entity_relations (to_entity_id);
	CREATE INDEX IF NOT EXISTS idx_relations_from_label ON entity_relations (from_entity_id, label);

	CREATE VIRTUAL TABLE IF NOT EXISTS entities_fts USING fts5(
		name,
		description,
		attr_text,
		content=entities,
		content_rowid=id
	);

	CREATE TRIGGER IF NOT EXISTS entities_ai AFTER INSERT ON entities BEGIN
		INSERT INTO entities_fts(rowid, name, description, attr_text)
		VALUES (new.id, new.name, new.description, new.attr_text);
	END;

	CREATE TRIGGER IF NOT EXISTS entities_ad AFTER DELETE ON entities BEGIN
		INSERT INTO entities_fts(entities_fts, rowid, name, description, attr_text)
		VALUES ('delete', old.id, old.name, old.description, old.attr_text);
	END;

	CREATE TRIGGER IF NOT EXISTS entities_au AFTER UPDATE ON entities BEGIN
		INSERT INTO entities_fts(entities_fts, rowid, name, description, attr_text)
		VALUES ('delete', old.id, old.name, old.description, old.attr_text);
		INSERT INTO entities_fts(rowid, name, description, attr_text)
		VALUES (new.id, new.name, new.description, new.attr_text);
	END;
	`

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return c.seedVocabulary(ctx)
}

// splitStatements breaks the DDL blob into individual statements on trailing
// semicolons. Trigger bodies contain semicolons of their own, so a trigger
// only ends at its "END;" line.
func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder
	inTrigger := false

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		if strings.HasPrefix(stripped, "CREATE TRIGGER") {
			inTrigger = true
		}
		current.WriteString(line)
		current.WriteString("\n")

		if inTrigger {
			if strings.HasSuffix(stripped, "END;") {
				statements = append(statements, current.String())
				current.Reset()
				inTrigger = false
			}
			continue
		}
		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}

	return statements
}

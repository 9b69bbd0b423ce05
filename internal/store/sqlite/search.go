package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"chronicle/internal/store"
)

const searchCandidateCap = 300

func (c *Client) SearchEntities(ctx context.Context, expr string, kindID, campaignID int64, relationLabels []string) ([]store.CandidateRow, error) {
	ftsQuery := toFTSQuery(expr)
	if ftsQuery == "" {
		return []store.CandidateRow{}, nil
	}

	cols, err := relationColumnSQL(relationLabels)
	if err != nil {
		return nil, err
	}

	// bm25 weights: name far above description, description above the
	// attribute catch-all. bm25 is smaller-is-better, so it enters negated
	// to give the engine a higher-is-better relevance.
	query := fmt.Sprintf(`
	SELECT e.id, e.name, e.description, e.attributes,
		   -bm25(entities_fts, 10.0, 4.0, 1.0) AS score%s
	FROM entities_fts
	JOIN entities e ON entities_fts.rowid = e.id
	WHERE entities_fts MATCH ?
	  AND e.kind_id = ?
	  AND e.campaign_id = ?
	  AND e.deleted_at IS NULL
	ORDER BY score DESC, e.name ASC
	LIMIT %d
	`, cols, searchCandidateCap)

	rows, err := c.db.QueryContext(ctx, query, ftsQuery, kindID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("searching entities: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows, relationLabels)
}

func (c *Client) ScanEntities(ctx context.Context, kindID, campaignID int64, relationLabels []string) ([]store.CandidateRow, error) {
	cols, err := relationColumnSQL(relationLabels)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
	SELECT e.id, e.name, e.description, e.attributes, 0.0 AS score%s
	FROM entities e
	WHERE e.kind_id = ?
	  AND e.campaign_id = ?
	  AND e.deleted_at IS NULL
	ORDER BY e.name ASC
	`, cols)

	rows, err := c.db.QueryContext(ctx, query, kindID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("scanning entities: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows, relationLabels)
}

func scanCandidates(rows *sql.Rows, relationLabels []string) ([]store.CandidateRow, error) {
	var results []store.CandidateRow
	for rows.Next() {
		var r store.CandidateRow
		dest := []any{&r.ID, &r.Name, &r.Description, &r.Attributes, &r.Relevance}

		related := make([]sql.NullString, len(relationLabels))
		for i := range related {
			dest = append(dest, &related[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning search candidate: %w", err)
		}

		if len(relationLabels) > 0 {
			r.Related = make(map[string]string, len(relationLabels))
			for i, label := range relationLabels {
				if related[i].Valid {
					r.Related[label] = related[i].String
				}
			}
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search candidates: %w", err)
	}
	if results == nil {
		results = []store.CandidateRow{}
	}
	return results, nil
}

// relationColumnSQL builds one correlated subquery per relation label,
// aggregating the display names of non-deleted targets.
func relationColumnSQL(relationLabels []string) (string, error) {
	var b strings.Builder
	for i, label := range relationLabels {
		if !labelPattern.MatchString(label) {
			return "", fmt.Errorf("invalid relation label: %s", label)
		}
		fmt.Fprintf(&b, `,
		   (SELECT group_concat(t.name, '%s')
			FROM entity_relations r
			JOIN entities t ON t.id = r.to_entity_id
			WHERE r.from_entity_id = e.id AND r.label = '%s' AND t.deleted_at IS NULL) AS rel_%d`,
			store.RelatedNameSeparator, label, i)
	}
	return b.String(), nil
}

// toFTSQuery translates the engine's prefix/boolean mini-language ("term*",
// AND, OR) into FTS5 MATCH syntax. Terms are stripped to letters and digits
// so user input cannot inject FTS5 operators.
func toFTSQuery(expr string) string {
	var out []string
	for _, token := range strings.Fields(expr) {
		switch token {
		case "AND", "OR":
			if len(out) > 0 && out[len(out)-1] != "AND" && out[len(out)-1] != "OR" {
				out = append(out, token)
			}
			continue
		}

		prefix := strings.HasSuffix(token, "*")
		term := sanitizeTerm(strings.TrimSuffix(token, "*"))
		if term == "" {
			continue
		}
		if prefix {
			term = fmt.Sprintf(`"%s"*`, term)
		} else {
			term = fmt.Sprintf(`"%s"`, term)
		}
		out = append(out, term)
	}

	for len(out) > 0 && (out[len(out)-1] == "AND" || out[len(out)-1] == "OR") {
		out = out[:len(out)-1]
	}

	return strings.Join(out, " ")
}

func sanitizeTerm(term string) string {
	var b strings.Builder
	for _, r := range term {
		if r == '"' || r == '\'' || r == '*' || r == '(' || r == ')' || r == ':' || r == '^' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

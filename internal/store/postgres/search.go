package postgres

import (
	"context"
	"fmt"
	"strings"

	"chronicle/internal/store"
)

// searchCandidateCap bounds the rows one indexed query may return. The
// engine trims further; this only keeps the pre-filter cheap.
const searchCandidateCap = 300

func (c *Client) SearchEntities(ctx context.Context, expr string, kindID, campaignID int64, relationLabels []string) ([]store.CandidateRow, error) {
	tsquery := toTSQuery(expr)
	if tsquery == "" {
		return []store.CandidateRow{}, nil
	}

	cols, joins, err := relationJoinSQL(relationLabels)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
SELECT e.id, e.name, e.description, e.attributes,
    ts_rank(e.search_vector, to_tsquery('simple', $1)) AS score%s
FROM entities e%s
WHERE e.search_vector @@ to_tsquery('simple', $1)
  AND e.kind_id = $2
  AND e.campaign_id = $3
  AND e.deleted_at IS NULL
ORDER BY score DESC, e.name ASC
LIMIT %d
`, cols, joins, searchCandidateCap)

	rows, err := c.pool.Query(ctx, query, tsquery, kindID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("searching entities: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows, relationLabels)
}

func (c *Client) ScanEntities(ctx context.Context, kindID, campaignID int64, relationLabels []string) ([]store.CandidateRow, error) {
	cols, joins, err := relationJoinSQL(relationLabels)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
SELECT e.id, e.name, e.description, e.attributes, 0::float8 AS score%s
FROM entities e%s
WHERE e.kind_id = $1
  AND e.campaign_id = $2
  AND e.deleted_at IS NULL
ORDER BY e.name ASC
`, cols, joins)

	rows, err := c.pool.Query(ctx, query, kindID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("scanning entities: %w", err)
	}
	defer rows.Close()

	return scanCandidates(rows, relationLabels)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanCandidates(rows pgxRows, relationLabels []string) ([]store.CandidateRow, error) {
	var results []store.CandidateRow
	for rows.Next() {
		var r store.CandidateRow
		dest := []any{&r.ID, &r.Name, &r.Description, &r.Attributes, &r.Relevance}

		// NULL aggregate (no relations) scans as a nil *string.
		related := make([]*string, len(relationLabels))
		for i := range related {
			dest = append(dest, &related[i])
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning search candidate: %w", err)
		}

		if len(relationLabels) > 0 {
			r.Related = make(map[string]string, len(relationLabels))
			for i, label := range relationLabels {
				if related[i] != nil {
					r.Related[label] = *related[i]
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

// relationJoinSQL builds one LATERAL join per relation label, aggregating
// the display names of non-deleted targets. Labels are code-defined
// constants, but they are still validated before interpolation.
func relationJoinSQL(relationLabels []string) (cols string, joins string, err error) {
	var colBuilder, joinBuilder strings.Builder
	for i, label := range relationLabels {
		if !labelPattern.MatchString(label) {
			return "", "", fmt.Errorf("invalid relation label: %s", label)
		}
		fmt.Fprintf(&colBuilder, ", rel_%d.names", i)
		fmt.Fprintf(&joinBuilder, `
LEFT JOIN LATERAL (
    SELECT string_agg(t.name, '%s' ORDER BY t.name) AS names
    FROM entity_relations r
    JOIN entities t ON t.id = r.to_entity_id
    WHERE r.from_entity_id = e.id AND r.label = '%s' AND t.deleted_at IS NULL
) rel_%d ON TRUE`, store.RelatedNameSeparator, label, i)
	}
	return colBuilder.String(), joinBuilder.String(), nil
}

// toTSQuery translates the engine's prefix/boolean mini-language ("term*",
// AND, OR) into to_tsquery syntax: "ring:* & macht:*". Anything that is not
// a letter, digit or star is stripped so user input cannot inject tsquery
// operators.
func toTSQuery(expr string) string {
	var out []string
	for _, token := range strings.Fields(expr) {
		switch token {
		case "AND":
			out = append(out, "&")
			continue
		case "OR":
			out = append(out, "|")
			continue
		}

		prefix := strings.HasSuffix(token, "*")
		term := sanitizeTerm(strings.TrimSuffix(token, "*"))
		if term == "" {
			continue
		}
		if prefix {
			term += ":*"
		}
		out = append(out, term)
	}

	// Trailing or doubled operators would make to_tsquery error out.
	cleaned := make([]string, 0, len(out))
	for _, token := range out {
		isOp := token == "&" || token == "|"
		if isOp && (len(cleaned) == 0 || cleaned[len(cleaned)-1] == "&" || cleaned[len(cleaned)-1] == "|") {
			continue
		}
		cleaned = append(cleaned, token)
	}
	for len(cleaned) > 0 && (cleaned[len(cleaned)-1] == "&" || cleaned[len(cleaned)-1] == "|") {
		cleaned = cleaned[:len(cleaned)-1]
	}

	return strings.Join(cleaned, " ")
}

func sanitizeTerm(term string) string {
	var b strings.Builder
	for _, r := range term {
		if r == '\'' || r == '\\' || r == ':' || r == '&' || r == '|' || r == '!' || r == '(' || r == ')' || r == '<' || r == '>' || r == '*' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

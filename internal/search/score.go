package search

import (
	"encoding/json"
	"sort"
	"strings"
	"unicode/utf8"

	"chronicle/internal/store"
)

// Flat rank bonuses, subtracted from the cost score. Lower cost sorts first,
// so a larger bonus means a better rank. Each applies at most once per
// candidate, independent of how many terms trigger it.
const (
	bonusExactName    = 1000
	bonusNamePrefix   = 100
	bonusNameContains = 50
	bonusRelatedName  = 30
	bonusAttributes   = 25
	bonusDescription  = 10

	distanceWeight = 0.5
)

// Term is one query term after vocabulary expansion. Variant is what
// retrieval and matching actually use: the canonical category key when the
// term resolved to one (the data stores keys, not localized words), the
// folded term otherwise.
type Term struct {
	Raw             string
	Variant         string
	ResolvedKey     bool
	LocaleAmbiguous bool
}

// candidate carries one retrieval row plus everything scoring needs,
// pre-folded once. Discarded after assembly.
type candidate struct {
	row   store.CandidateRow
	attrs map[string]any

	name     string
	desc     string
	attrText string
	related  []relatedField

	score float64
}

// relatedField is one resolved relation join: the folded aggregate value
// plus the individual folded names for per-name edit-distance checks.
type relatedField struct {
	joined string
	names  []string
}

func newCandidate(row store.CandidateRow, kind Kind) candidate {
	c := candidate{
		row:   row,
		attrs: map[string]any{},
		name:  Fold(row.Name),
		desc:  Fold(row.Description),
	}

	if len(row.Attributes) > 0 {
		// A malformed attribute blob degrades to an empty map; the entity
		// stays searchable by name and description.
		if err := json.Unmarshal(row.Attributes, &c.attrs); err != nil {
			c.attrs = map[string]any{}
		}
	}
	c.attrText = Fold(kind.attributeText(c.attrs))

	for _, label := range kind.relationLabels() {
		value := row.Related[label]
		if value == "" {
			continue
		}
		field := relatedField{joined: Fold(value)}
		for _, name := range strings.Split(field.joined, store.RelatedNameSeparator) {
			if name = strings.TrimSpace(name); name != "" {
				field.names = append(field.names, name)
			}
		}
		c.related = append(c.related, field)
	}

	return c
}

func (c *candidate) relatedContains(v string) bool {
	for _, f := range c.related {
		if strings.Contains(f.joined, v) {
			return true
		}
	}
	return false
}

// score computes the candidate's cost. Native index relevance is
// higher-is-better, so it enters negated; edit distance is a cost and enters
// positive. A term matching only outside the name counts as distance zero:
// non-name matches are maximally relevant as far as distance is concerned.
func (c *candidate) computeScore(terms []Term) {
	var exact, prefix, contains, viaRelated, viaAttrs, viaDesc bool
	totalDist := 0

	for _, t := range terms {
		v := t.Variant
		nameHit := strings.Contains(c.name, v)
		descHit := strings.Contains(c.desc, v)
		attrHit := !t.LocaleAmbiguous && strings.Contains(c.attrText, v)
		relHit := c.relatedContains(v)

		var d int
		switch {
		case (descHit || attrHit || relHit) && !nameHit:
			d = 0
		case strings.HasPrefix(c.name, v):
			// Obvious prefix: the leftover length is a cheap stand-in for
			// the full edit distance.
			d = len(c.name) - len(v)
		default:
			d = wordDistance(v, c.name)
		}
		totalDist += d

		exact = exact || c.name == v
		prefix = prefix || strings.HasPrefix(c.name, v)
		contains = contains || nameHit
		viaRelated = viaRelated || relHit
		viaAttrs = viaAttrs || attrHit
		viaDesc = viaDesc || descHit
	}

	score := -c.row.Relevance + distanceWeight*float64(totalDist)
	if exact {
		score -= bonusExactName
	}
	if prefix {
		score -= bonusNamePrefix
	}
	if contains {
		score -= bonusNameContains
	}
	if viaRelated {
		score -= bonusRelatedName
	}
	if viaAttrs {
		score -= bonusAttributes
	}
	if viaDesc {
		score -= bonusDescription
	}
	c.score = score
}

func scoreCandidates(rows []store.CandidateRow, terms []Term, kind Kind) []candidate {
	cands := make([]candidate, 0, len(rows))
	for _, row := range rows {
		c := newCandidate(row, kind)
		c.computeScore(terms)
		cands = append(cands, c)
	}
	return cands
}

// termSatisfied is the single inclusion condition shared by the simple, AND
// and OR filters: a substring hit in any field, a name prefix, or a bounded
// edit distance against the name or any individual related-entity name.
func termSatisfied(c *candidate, t Term) bool {
	v := t.Variant

	if strings.Contains(c.name, v) || strings.Contains(c.desc, v) {
		return true
	}
	if !t.LocaleAmbiguous && strings.Contains(c.attrText, v) {
		return true
	}
	if c.relatedContains(v) {
		return true
	}
	if strings.HasPrefix(c.name, v) {
		return true
	}

	threshold := distanceThreshold(utf8.RuneCountInString(v))
	if wordDistance(v, c.name) <= threshold {
		return true
	}
	for _, f := range c.related {
		for _, name := range f.names {
			if wordDistance(v, name) <= threshold {
				return true
			}
		}
	}
	return false
}

// filterCandidates applies the boolean-aware inclusion filter after scoring.
// Simple queries and AND queries both require every term to match; OR
// queries require at least one.
func filterCandidates(cands []candidate, op Operator, terms, negated []Term) []candidate {
	kept := make([]candidate, 0, len(cands))

candidates:
	for i := range cands {
		c := &cands[i]

		matched := 0
		for _, t := range terms {
			if termSatisfied(c, t) {
				matched++
			}
		}
		switch op {
		case OpOr:
			if matched == 0 {
				continue candidates
			}
		default:
			if matched < len(terms) {
				continue candidates
			}
		}

		for _, t := range negated {
			v := t.Variant
			if strings.Contains(c.name, v) || strings.Contains(c.desc, v) ||
				strings.Contains(c.attrText, v) || c.relatedContains(v) {
				continue candidates
			}
		}

		kept = append(kept, *c)
	}

	return kept
}

// sortCandidates orders by ascending cost; name and id break ties so a fixed
// dataset always yields the same ordering.
func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].score != cands[j].score {
			return cands[i].score < cands[j].score
		}
		if cands[i].name != cands[j].name {
			return cands[i].name < cands[j].name
		}
		return cands[i].row.ID < cands[j].row.ID
	})
}

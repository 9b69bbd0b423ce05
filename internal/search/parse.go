package search

import "strings"

// Operator is the boolean structure detected in a raw query.
type Operator int

const (
	// OpNone marks a simple query: terms are OR-ed for retrieval breadth,
	// but the post-scoring filter requires every term to match somewhere.
	OpNone Operator = iota
	OpAnd
	OpOr
)

func (o Operator) String() string {
	switch o {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return ""
	}
}

// ParsedQuery is the ephemeral result of tokenizing one raw search string.
// It is created per search call and never persisted.
type ParsedQuery struct {
	Terms   []string
	Negated []string
	Op      Operator

	// UseExactFirstAttempt makes the first indexed retrieval attempt use the
	// terms verbatim instead of as prefixes, so short common words do not
	// drown the candidate pool. Set for every simple query; the prefix form
	// is the second attempt.
	UseExactFirstAttempt bool
}

func (p ParsedQuery) HasOperators() bool { return p.Op != OpNone }

// ParseQuery splits a raw user query on whitespace and recognizes the
// literal operators AND, OR and NOT (case-insensitive) between terms. Terms
// are folded. When both AND and OR appear, AND wins: the stricter reading
// returns fewer, better results.
func ParseQuery(raw string) ParsedQuery {
	var p ParsedQuery
	negateNext := false

	for _, field := range strings.Fields(raw) {
		switch strings.ToUpper(field) {
		case "AND":
			p.Op = OpAnd
		case "OR":
			if p.Op != OpAnd {
				p.Op = OpOr
			}
		case "NOT":
			negateNext = true
		default:
			term := Fold(field)
			if term == "" {
				continue
			}
			if negateNext {
				p.Negated = append(p.Negated, term)
				negateNext = false
			} else {
				p.Terms = append(p.Terms, term)
			}
		}
	}

	p.UseExactFirstAttempt = p.Op == OpNone
	return p
}

// indexExpression reconstructs the boolean expression in the store's
// prefix/boolean mini-language from the expanded term variants. Simple
// queries join with OR so the candidate pool stays broad.
func indexExpression(terms []Term, op Operator, prefix bool) string {
	joiner := " OR "
	if op == OpAnd {
		joiner = " AND "
	}

	tokens := make([]string, 0, len(terms))
	for _, t := range terms {
		token := t.Variant
		if prefix {
			token += "*"
		}
		tokens = append(tokens, token)
	}
	return strings.Join(tokens, joiner)
}

package search

import (
	"reflect"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		terms   []string
		negated []string
		op      Operator
		exact   bool
	}{
		{
			name:  "single term",
			raw:   "Gandalf",
			terms: []string{"gandalf"},
			op:    OpNone,
			exact: true,
		},
		{
			name:  "multiple plain terms",
			raw:   "ring macht",
			terms: []string{"ring", "macht"},
			op:    OpNone,
			exact: true,
		},
		{
			name:  "explicit and",
			raw:   "feuer AND schwert",
			terms: []string{"feuer", "schwert"},
			op:    OpAnd,
		},
		{
			name:  "lowercase or",
			raw:   "feuer or schwert",
			terms: []string{"feuer", "schwert"},
			op:    OpOr,
		},
		{
			name:  "and wins over or",
			raw:   "feuer AND schwert OR axt",
			terms: []string{"feuer", "schwert", "axt"},
			op:    OpAnd,
		},
		{
			name:  "and wins regardless of order",
			raw:   "feuer OR schwert AND axt",
			terms: []string{"feuer", "schwert", "axt"},
			op:    OpAnd,
		},
		{
			name:    "not negates the following term",
			raw:     "schwert NOT rostig",
			terms:   []string{"schwert"},
			negated: []string{"rostig"},
			op:      OpNone,
			exact:   true,
		},
		{
			name:  "terms are folded",
			raw:   "RÜSTUNG Légende",
			terms: []string{"rustung", "legende"},
			op:    OpNone,
			exact: true,
		},
		{
			name:  "blank query",
			raw:   "   \t ",
			op:    OpNone,
			exact: true,
		},
		{
			name:  "dangling not is ignored",
			raw:   "schwert NOT",
			terms: []string{"schwert"},
			op:    OpNone,
			exact: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := ParseQuery(tc.raw)
			if !reflect.DeepEqual(p.Terms, tc.terms) {
				t.Errorf("terms: got %v, want %v", p.Terms, tc.terms)
			}
			if !reflect.DeepEqual(p.Negated, tc.negated) {
				t.Errorf("negated: got %v, want %v", p.Negated, tc.negated)
			}
			if p.Op != tc.op {
				t.Errorf("op: got %v, want %v", p.Op, tc.op)
			}
			if p.UseExactFirstAttempt != tc.exact {
				t.Errorf("exact first attempt: got %v, want %v", p.UseExactFirstAttempt, tc.exact)
			}
		})
	}
}

func TestIndexExpression(t *testing.T) {
	terms := func(vals ...string) []Term {
		out := make([]Term, 0, len(vals))
		for _, v := range vals {
			out = append(out, Term{Raw: v, Variant: v})
		}
		return out
	}

	tests := []struct {
		name   string
		terms  []Term
		op     Operator
		prefix bool
		want   string
	}{
		{"single exact", terms("gandalf"), OpNone, false, "gandalf"},
		{"single prefix", terms("gandalf"), OpNone, true, "gandalf*"},
		{"simple terms join with or", terms("ring", "macht"), OpNone, false, "ring OR macht"},
		{"and join", terms("feuer", "schwert"), OpAnd, true, "feuer* AND schwert*"},
		{"or join", terms("feuer", "schwert"), OpOr, true, "feuer* OR schwert*"},
		{"empty", nil, OpNone, false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := indexExpression(tc.terms, tc.op, tc.prefix); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

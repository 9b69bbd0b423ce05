package sqlite

import (
	"strings"
	"testing"
)

func TestToFTSQuery(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"single exact", "gandalf", `"gandalf"`},
		{"single prefix", "gandalf*", `"gandalf"*`},
		{"or join", "ring OR macht", `"ring" OR "macht"`},
		{"or join prefixed", "ring* OR macht*", `"ring"* OR "macht"*`},
		{"and join", "feuer* AND schwert*", `"feuer"* AND "schwert"*`},
		{"quotes stripped", `o"brien* OR x`, `"obrien"* OR "x"`},
		{"fts operators stripped", "col:value* AND (sub)*", `"colvalue"* AND "sub"*`},
		{"operators only", "AND OR", ""},
		{"trailing operator dropped", "ring* AND", `"ring"*`},
		{"leading operator dropped", "OR ring*", `"ring"*`},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := toFTSQuery(tc.expr); got != tc.want {
				t.Errorf("toFTSQuery(%q) = %q, want %q", tc.expr, got, tc.want)
			}
		})
	}
}

func TestRelationColumnSQL(t *testing.T) {
	cols, err := relationColumnSQL([]string{"owner", "references"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"'owner'", "'references'", "rel_0", "rel_1"} {
		if !strings.Contains(cols, want) {
			t.Errorf("missing %s in:\n%s", want, cols)
		}
	}

	if _, err := relationColumnSQL([]string{"bad label"}); err == nil {
		t.Error("expected invalid label to be rejected")
	}
}

package store

import "testing"

func TestAttributeText(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]any
		want  string
	}{
		{
			name: "values sorted by key",
			attrs: map[string]any{
				"type":   "weapon",
				"rarity": "rare",
			},
			want: "rare weapon",
		},
		{
			name: "numbers and booleans stringify",
			attrs: map[string]any{
				"charges": float64(3),
				"cursed":  true,
			},
			want: "3 true",
		},
		{
			name: "lists contribute elements",
			attrs: map[string]any{
				"tags": []any{"magisch", "zerbrechlich"},
			},
			want: "magisch zerbrechlich",
		},
		{
			name: "nested maps and empties are skipped",
			attrs: map[string]any{
				"meta":  map[string]any{"hidden": "x"},
				"blank": "",
				"none":  nil,
				"type":  "ring",
			},
			want: "ring",
		},
		{
			name:  "empty map",
			attrs: map[string]any{},
			want:  "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := AttributeText(tc.attrs); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

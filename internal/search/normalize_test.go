package search

import (
	"reflect"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Gandalf", "gandalf"},
		{"RÜSTUNG", "rustung"},
		{"Légendaire", "legendaire"},
		{"Schlüssel", "schlussel"},
		{"already folded", "already folded"},
		{"", ""},
	}

	for _, tc := range tests {
		if got := Fold(tc.in); got != tc.want {
			t.Errorf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFoldFields(t *testing.T) {
	got := foldFields("  Ring   der  MACHT ")
	want := []string{"ring", "der", "macht"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("foldFields = %v, want %v", got, want)
	}
}

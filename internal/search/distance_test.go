package search

import "testing"

func TestWordDistance(t *testing.T) {
	tests := []struct {
		term string
		name string
		want int
	}{
		{"rng", "ring der macht", 1},
		{"macht", "ring der macht", 0},
		{"gandolf", "gandalf", 1},
		{"schwert", "", 7},
		{"axt", "ring der macht", 3},
	}

	for _, tc := range tests {
		if got := wordDistance(tc.term, tc.name); got != tc.want {
			t.Errorf("wordDistance(%q, %q) = %d, want %d", tc.term, tc.name, got, tc.want)
		}
	}
}

func TestDistanceThreshold(t *testing.T) {
	tests := []struct {
		termLen int
		want    int
	}{
		{1, 2},
		{3, 2},
		{4, 3},
		{6, 3},
		{7, 4},
		{20, 4},
	}

	for _, tc := range tests {
		if got := distanceThreshold(tc.termLen); got != tc.want {
			t.Errorf("distanceThreshold(%d) = %d, want %d", tc.termLen, got, tc.want)
		}
	}
}

package search

import (
	"testing"

	"chronicle/internal/store"
)

func TestNewCandidateMalformedAttributes(t *testing.T) {
	c := newCandidate(store.CandidateRow{
		ID:         1,
		Name:       "Zerbrochener Krug",
		Attributes: []byte(`{"type": "potion",`),
	}, Items())

	if len(c.attrs) != 0 {
		t.Errorf("expected empty attribute map, got %v", c.attrs)
	}
	if c.attrText != "" {
		t.Errorf("expected empty attribute text, got %q", c.attrText)
	}
	if c.name != "zerbrochener krug" {
		t.Errorf("name folding skipped: %q", c.name)
	}
}

func TestNewCandidateSplitsRelatedNames(t *testing.T) {
	c := newCandidate(store.CandidateRow{
		ID:   1,
		Name: "Eiserner Schlüssel",
		Related: map[string]string{
			RelationOwner:      "Aldric",
			RelationReferences: "Ring der Macht, Alte Chronik",
		},
	}, Items())

	if len(c.related) != 2 {
		t.Fatalf("expected 2 related fields, got %d", len(c.related))
	}
	var refNames []string
	for _, f := range c.related {
		if f.joined == "ring der macht, alte chronik" {
			refNames = f.names
		}
	}
	if len(refNames) != 2 || refNames[0] != "ring der macht" || refNames[1] != "alte chronik" {
		t.Errorf("expected individual folded names, got %v", refNames)
	}
}

// Two terms hitting the same field must not stack its bonus.
func TestComputeScoreBonusAppliesOnce(t *testing.T) {
	single := newCandidate(store.CandidateRow{ID: 1, Name: "Ring", Description: "Ein alter Ring."}, Lore())
	single.computeScore([]Term{{Raw: "ring", Variant: "ring"}})

	double := newCandidate(store.CandidateRow{ID: 2, Name: "Ring", Description: "Ein alter Ring."}, Lore())
	double.computeScore([]Term{
		{Raw: "ring", Variant: "ring"},
		{Raw: "alter", Variant: "alter"},
	})

	// The second term hits the description too, but the description bonus
	// must not apply a second time.
	if double.score < single.score {
		t.Errorf("bonus stacked: one term %f, two terms %f", single.score, double.score)
	}
}

func TestComputeScoreExactBeatsPrefix(t *testing.T) {
	exact := newCandidate(store.CandidateRow{ID: 1, Name: "Gandalf"}, NPCs())
	exact.computeScore([]Term{{Raw: "gandalf", Variant: "gandalf"}})

	prefixed := newCandidate(store.CandidateRow{ID: 2, Name: "Gandalfs Stab"}, NPCs())
	prefixed.computeScore([]Term{{Raw: "gandalf", Variant: "gandalf"}})

	if exact.score >= prefixed.score {
		t.Errorf("exact %f should score below prefix %f", exact.score, prefixed.score)
	}
}

func TestComputeScoreUsesNativeRelevance(t *testing.T) {
	hot := newCandidate(store.CandidateRow{ID: 1, Name: "Alte Chronik", Relevance: 2.5}, Lore())
	hot.computeScore([]Term{{Raw: "chronik", Variant: "chronik"}})

	cold := newCandidate(store.CandidateRow{ID: 2, Name: "Alte Chronik", Relevance: 0.1}, Lore())
	cold.computeScore([]Term{{Raw: "chronik", Variant: "chronik"}})

	if hot.score >= cold.score {
		t.Errorf("higher index relevance must lower the cost: %f vs %f", hot.score, cold.score)
	}
}

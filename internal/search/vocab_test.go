package search

import (
	"testing"

	"chronicle/internal/store"
)

func testVocabulary() *Vocabulary {
	return NewVocabulary(store.DefaultVocabulary())
}

func TestVocabularyResolveExact(t *testing.T) {
	v := testVocabulary()
	cats := []string{CategoryType, CategoryRarity}

	tests := []struct {
		name   string
		term   string
		locale string
		key    string
	}{
		{"german type word", "waffe", "de", "weapon"},
		{"english type word", "weapon", "en", "weapon"},
		{"folded umlaut", Fold("Rüstung"), "de", "armor"},
		{"german rarity word", "selten", "de", "rare"},
		{"rarity with space", Fold("Sehr selten"), "de", "very_rare"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := v.Resolve(tc.term, tc.locale, cats)
			if !res.Resolved || res.Key != tc.key {
				t.Errorf("Resolve(%q, %s) = %+v, want key %q", tc.term, tc.locale, res, tc.key)
			}
			if res.Ambiguous {
				t.Errorf("Resolve(%q, %s) unexpectedly ambiguous", tc.term, tc.locale)
			}
		})
	}
}

func TestVocabularyResolveFuzzy(t *testing.T) {
	v := testVocabulary()
	cats := []string{CategoryType, CategoryRarity}

	res := v.Resolve("waffen", "de", cats)
	if !res.Resolved || res.Key != "weapon" {
		t.Errorf("expected fuzzy match to weapon, got %+v", res)
	}

	res = v.Resolve("schriftrole", "de", cats)
	if !res.Resolved || res.Key != "scroll" {
		t.Errorf("expected fuzzy match to scroll, got %+v", res)
	}

	// Below the minimum length fuzzy matching stays off, even at distance 1.
	res = v.Resolve("wafe", "de", cats)
	if res.Resolved {
		t.Errorf("expected no fuzzy match for a 4-rune term, got %+v", res)
	}
}

func TestVocabularyCrossLocaleAmbiguity(t *testing.T) {
	v := testVocabulary()
	cats := []string{CategoryType, CategoryRarity}

	// "rare" is an exact English rarity word. Under the German locale it must
	// neither resolve nor silently pass as a free-text term.
	res := v.Resolve("rare", "de", cats)
	if res.Resolved {
		t.Errorf("expected no resolution, got %+v", res)
	}
	if !res.Ambiguous {
		t.Errorf("expected ambiguity flag, got %+v", res)
	}

	res = v.Resolve("selten", "en", cats)
	if res.Resolved || !res.Ambiguous {
		t.Errorf("expected ambiguous German word under English locale, got %+v", res)
	}

	// "Ring" spells the same in both locales, so the active locale wins and
	// there is nothing ambiguous about it.
	for _, locale := range []string{"de", "en"} {
		res = v.Resolve("ring", locale, cats)
		if !res.Resolved || res.Key != "ring" || res.Ambiguous {
			t.Errorf("Resolve(ring, %s) = %+v, want unambiguous ring", locale, res)
		}
	}
}

func TestVocabularyDisplayNameRoundTrip(t *testing.T) {
	v := testVocabulary()

	res := v.Resolve(Fold("Trank"), "de", []string{CategoryType})
	if !res.Resolved || res.Key != "potion" {
		t.Fatalf("Resolve(trank) = %+v", res)
	}
	if got := v.DisplayName(CategoryType, res.Key, "de"); got != "trank" {
		t.Errorf("DisplayName de = %q, want trank", got)
	}
	if got := v.DisplayName(CategoryType, res.Key, "en"); got != "potion" {
		t.Errorf("DisplayName en = %q, want potion", got)
	}
	if got := v.DisplayName(CategoryType, "no_such_key", "de"); got != "" {
		t.Errorf("DisplayName for unknown key = %q, want empty", got)
	}
}

func TestVocabularyIsCanonicalKey(t *testing.T) {
	v := testVocabulary()

	if !v.IsCanonicalKey(CategoryType, "potion") {
		t.Error("potion should be a canonical type key")
	}
	if !v.IsCanonicalKey(CategoryRarity, "very_rare") {
		t.Error("very_rare should be a canonical rarity key")
	}
	if v.IsCanonicalKey(CategoryType, "trank") {
		t.Error("localized display names are not canonical keys")
	}
	if v.IsCanonicalKey(CategoryRarity, "potion") {
		t.Error("keys are scoped per category")
	}
}

package search

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"

	"chronicle/internal/config"
	"chronicle/internal/store"
)

const (
	// Fuzzy vocabulary matching only applies to terms of at least this many
	// runes; anything shorter produces too many false positives.
	fuzzyMinTermLen = 5
	fuzzyMaxDist    = 2
)

// Vocabulary maps localized category words ("Waffe", "weapon") to the
// canonical keys the entity data actually stores ("weapon"). It is built
// once at startup and never mutated afterwards, so concurrent searches can
// read it without synchronization.
type Vocabulary struct {
	// category → locale → folded display name → canonical key
	exact map[string]map[string]map[string]string
	// category → locale → sorted (name, key) pairs, for deterministic fuzzy scans
	ordered map[string]map[string][]vocabPair
}

type vocabPair struct {
	name string
	key  string
}

// LoadVocabulary reads the closed-category reference data from the store and
// builds the immutable lookup structure.
func LoadVocabulary(ctx context.Context, src store.Searcher) (*Vocabulary, error) {
	entries, err := src.LoadVocabulary(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary: %w", err)
	}
	return NewVocabulary(entries), nil
}

func NewVocabulary(entries []store.VocabularyEntry) *Vocabulary {
	v := &Vocabulary{
		exact:   make(map[string]map[string]map[string]string),
		ordered: make(map[string]map[string][]vocabPair),
	}

	for _, e := range entries {
		locales, ok := v.exact[e.Category]
		if !ok {
			locales = make(map[string]map[string]string)
			v.exact[e.Category] = locales
			v.ordered[e.Category] = make(map[string][]vocabPair)
		}
		names, ok := locales[e.Locale]
		if !ok {
			names = make(map[string]string)
			locales[e.Locale] = names
		}
		name := Fold(e.DisplayName)
		names[name] = e.CanonicalKey
		v.ordered[e.Category][e.Locale] = append(v.ordered[e.Category][e.Locale], vocabPair{name: name, key: e.CanonicalKey})
	}

	for _, locales := range v.ordered {
		for locale := range locales {
			pairs := locales[locale]
			sort.Slice(pairs, func(i, j int) bool { return pairs[i].name < pairs[j].name })
			locales[locale] = pairs
		}
	}

	return v
}

// Resolution describes how one query term relates to the closed vocabularies.
type Resolution struct {
	// Key is the canonical category key the term resolved to.
	Key      string
	Resolved bool
	// Ambiguous marks a term that exactly matches a localized name in the
	// other locale but not the active one. Such a term must not be matched
	// against free-text attribute blobs, only against names and descriptions.
	Ambiguous bool
}

// Resolve maps a folded term to a canonical key in the given locale,
// considering only the named categories. Exact matches win; fuzzy matching
// kicks in for longer terms. Categories are tried in the order given, so a
// term that happens to name both a type and a rarity resolves to the type.
func (v *Vocabulary) Resolve(term, locale string, categories []string) Resolution {
	if v == nil || term == "" {
		return Resolution{}
	}

	for _, cat := range categories {
		if key, ok := v.exact[cat][locale][term]; ok {
			return Resolution{Key: key, Resolved: true}
		}
	}

	if v.exactInLocale(term, otherLocale(locale), categories) {
		return Resolution{Ambiguous: true}
	}

	if utf8.RuneCountInString(term) < fuzzyMinTermLen {
		return Resolution{}
	}

	for _, cat := range categories {
		bestDist := fuzzyMaxDist + 1
		var bestKey string
		for _, pair := range v.ordered[cat][locale] {
			d := edlib.LevenshteinDistance(term, pair.name)
			if d < bestDist {
				bestDist = d
				bestKey = pair.key
			}
		}
		if bestDist <= fuzzyMaxDist {
			return Resolution{Key: bestKey, Resolved: true}
		}
	}

	return Resolution{}
}

// DisplayName returns the localized display name for a canonical key, for
// re-rendering resolved category values. The empty string means the key is
// unknown in that locale.
func (v *Vocabulary) DisplayName(category, key, locale string) string {
	if v == nil {
		return ""
	}
	for _, pair := range v.ordered[category][locale] {
		if pair.key == key {
			return pair.name
		}
	}
	return ""
}

// IsCanonicalKey reports whether key is a known canonical key of category.
func (v *Vocabulary) IsCanonicalKey(category, key string) bool {
	if v == nil {
		return false
	}
	for _, locales := range []string{config.LocaleGerman, config.LocaleEnglish} {
		for _, pair := range v.ordered[category][locales] {
			if pair.key == key {
				return true
			}
		}
	}
	return false
}

func (v *Vocabulary) exactInLocale(term, locale string, categories []string) bool {
	for _, cat := range categories {
		if _, ok := v.exact[cat][locale][term]; ok {
			return true
		}
	}
	return false
}

func otherLocale(locale string) string {
	if locale == config.LocaleGerman {
		return config.LocaleEnglish
	}
	return config.LocaleGerman
}

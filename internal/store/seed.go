package store

// DefaultVocabulary is the reference data for the closed item categories in
// both supported locales. Backends seed it during EnsureSchema; entries are
// never mutated at runtime.
func DefaultVocabulary() []VocabularyEntry {
	return []VocabularyEntry{
		{Category: "type", CanonicalKey: "weapon", Locale: "de", DisplayName: "Waffe"},
		{Category: "type", CanonicalKey: "weapon", Locale: "en", DisplayName: "Weapon"},
		{Category: "type", CanonicalKey: "armor", Locale: "de", DisplayName: "Rüstung"},
		{Category: "type", CanonicalKey: "armor", Locale: "en", DisplayName: "Armor"},
		{Category: "type", CanonicalKey: "potion", Locale: "de", DisplayName: "Trank"},
		{Category: "type", CanonicalKey: "potion", Locale: "en", DisplayName: "Potion"},
		{Category: "type", CanonicalKey: "scroll", Locale: "de", DisplayName: "Schriftrolle"},
		{Category: "type", CanonicalKey: "scroll", Locale: "en", DisplayName: "Scroll"},
		{Category: "type", CanonicalKey: "ring", Locale: "de", DisplayName: "Ring"},
		{Category: "type", CanonicalKey: "ring", Locale: "en", DisplayName: "Ring"},
		{Category: "type", CanonicalKey: "wand", Locale: "de", DisplayName: "Zauberstab"},
		{Category: "type", CanonicalKey: "wand", Locale: "en", DisplayName: "Wand"},
		{Category: "type", CanonicalKey: "amulet", Locale: "de", DisplayName: "Amulett"},
		{Category: "type", CanonicalKey: "amulet", Locale: "en", DisplayName: "Amulet"},

		{Category: "rarity", CanonicalKey: "common", Locale: "de", DisplayName: "Gewöhnlich"},
		{Category: "rarity", CanonicalKey: "common", Locale: "en", DisplayName: "Common"},
		{Category: "rarity", CanonicalKey: "uncommon", Locale: "de", DisplayName: "Ungewöhnlich"},
		{Category: "rarity", CanonicalKey: "uncommon", Locale: "en", DisplayName: "Uncommon"},
		{Category: "rarity", CanonicalKey: "rare", Locale: "de", DisplayName: "Selten"},
		{Category: "rarity", CanonicalKey: "rare", Locale: "en", DisplayName: "Rare"},
		{Category: "rarity", CanonicalKey: "very_rare", Locale: "de", DisplayName: "Sehr selten"},
		{Category: "rarity", CanonicalKey: "very_rare", Locale: "en", DisplayName: "Very rare"},
		{Category: "rarity", CanonicalKey: "legendary", Locale: "de", DisplayName: "Legendär"},
		{Category: "rarity", CanonicalKey: "legendary", Locale: "en", DisplayName: "Legendary"},
		{Category: "rarity", CanonicalKey: "artifact", Locale: "de", DisplayName: "Artefakt"},
		{Category: "rarity", CanonicalKey: "artifact", Locale: "en", DisplayName: "Artifact"},
	}
}

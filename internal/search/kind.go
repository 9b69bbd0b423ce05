package search

import "chronicle/internal/store"

// Category names for the closed vocabularies.
const (
	CategoryType   = "type"
	CategoryRarity = "rarity"
)

// Relation labels the engine resolves for search-by-proxy.
const (
	RelationOwner      = "owner"
	RelationLeader     = "leader"
	RelationReferences = "references"
)

// RelationJoin declares one one-hop relation whose target display names are
// resolved for candidates of a kind.
type RelationJoin struct {
	Label string
}

// Kind configures the generic engine for one entity kind: which one-hop
// relation joins to resolve, which closed vocabularies apply to query terms,
// and how the kind's attribute map flattens into searchable text. Every kind
// runs through the same pipeline; there are no per-kind code paths.
type Kind struct {
	Name          string
	Relations     []RelationJoin
	Vocabularies  []string
	AttributeText func(attrs map[string]any) string
}

func (k Kind) relationLabels() []string {
	labels := make([]string, 0, len(k.Relations))
	for _, r := range k.Relations {
		labels = append(labels, r.Label)
	}
	return labels
}

func (k Kind) attributeText(attrs map[string]any) string {
	if k.AttributeText == nil {
		return store.AttributeText(attrs)
	}
	return k.AttributeText(attrs)
}

// Items is the search configuration for item entities: owners and referenced
// lore entries are searchable by proxy, and type/rarity words in either
// locale resolve to the canonical keys stored in the attribute map.
func Items() Kind {
	return Kind{
		Name:         "item",
		Relations:    []RelationJoin{{Label: RelationOwner}, {Label: RelationReferences}},
		Vocabularies: []string{CategoryType, CategoryRarity},
	}
}

// Factions resolves the faction's leader, so a faction is findable by its
// leader's name.
func Factions() Kind {
	return Kind{
		Name:      "faction",
		Relations: []RelationJoin{{Label: RelationLeader}},
	}
}

func NPCs() Kind      { return Kind{Name: "npc"} }
func Locations() Kind { return Kind{Name: "location"} }
func Lore() Kind      { return Kind{Name: "lore"} }
func Players() Kind   { return Kind{Name: "player"} }

// Kinds returns every searchable kind configuration keyed by kind name.
func Kinds() map[string]Kind {
	kinds := map[string]Kind{}
	for _, k := range []Kind{Items(), Factions(), NPCs(), Locations(), Lore(), Players()} {
		kinds[k.Name] = k
	}
	return kinds
}

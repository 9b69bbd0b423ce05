package sqlite

import (
	"context"
	"testing"

	"chronicle/internal/store"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()

	c, err := New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("opening in-memory store: %v", err)
	}
	t.Cleanup(func() { c.Close(ctx) })

	if err := c.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return c
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	c := newTestClient(t)
	if err := c.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
}

func TestEntityLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	campaignID, err := c.CreateCampaign(ctx, "Schattenreich")
	if err != nil {
		t.Fatalf("creating campaign: %v", err)
	}

	id, err := c.UpsertEntity(ctx, store.EntityInput{
		CampaignID:  campaignID,
		Kind:        "item",
		Name:        "Ring der Macht",
		Description: "Ein unscheinbarer Goldring.",
		Attributes:  map[string]any{"type": "ring", "rarity": "legendary"},
	})
	if err != nil {
		t.Fatalf("upserting entity: %v", err)
	}

	e, err := c.GetEntity(ctx, campaignID, "item", "Ring der Macht")
	if err != nil {
		t.Fatalf("getting entity: %v", err)
	}
	if e.ID != id || e.Name != "Ring der Macht" || e.Attributes["type"] != "ring" {
		t.Errorf("unexpected entity: %+v", e)
	}

	// Upserting the same name again updates in place.
	id2, err := c.UpsertEntity(ctx, store.EntityInput{
		CampaignID:  campaignID,
		Kind:        "item",
		Name:        "Ring der Macht",
		Description: "Der eine Ring.",
	})
	if err != nil {
		t.Fatalf("re-upserting entity: %v", err)
	}
	if id2 != id {
		t.Errorf("upsert created a second row: %d vs %d", id2, id)
	}
	e, err = c.GetEntity(ctx, campaignID, "item", "ring der macht")
	if err != nil {
		t.Fatalf("getting entity after update: %v", err)
	}
	if e.Description != "Der eine Ring." {
		t.Errorf("description not updated: %q", e.Description)
	}

	summaries, err := c.ListEntities(ctx, campaignID, "item")
	if err != nil {
		t.Fatalf("listing entities: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Name != "Ring der Macht" {
		t.Errorf("unexpected listing: %+v", summaries)
	}

	if err := c.RemoveEntity(ctx, campaignID, "item", "Ring der Macht"); err != nil {
		t.Fatalf("removing entity: %v", err)
	}
	if _, err := c.GetEntity(ctx, campaignID, "item", "Ring der Macht"); err == nil {
		t.Error("expected removed entity to be gone")
	}
	if err := c.RemoveEntity(ctx, campaignID, "item", "Ring der Macht"); err == nil {
		t.Error("expected second removal to fail")
	}
}

func TestSearchEntities(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	campaignID, err := c.CreateCampaign(ctx, "Schattenreich")
	if err != nil {
		t.Fatalf("creating campaign: %v", err)
	}
	otherID, err := c.CreateCampaign(ctx, "Nebelkrieg")
	if err != nil {
		t.Fatalf("creating second campaign: %v", err)
	}

	kindID, err := c.KindID(ctx, "item")
	if err != nil {
		t.Fatalf("resolving kind: %v", err)
	}

	seed := []store.EntityInput{
		{CampaignID: campaignID, Kind: "item", Name: "Ring der Macht", Description: "Ein unscheinbarer Goldring."},
		{CampaignID: campaignID, Kind: "item", Name: "Heiltrank", Attributes: map[string]any{"type": "potion"}},
		{CampaignID: otherID, Kind: "item", Name: "Ring der Macht", Description: "Kopie im Nachbarreich."},
	}
	for _, in := range seed {
		if _, err := c.UpsertEntity(ctx, in); err != nil {
			t.Fatalf("seeding %s: %v", in.Name, err)
		}
	}

	rows, err := c.SearchEntities(ctx, "ring*", kindID, campaignID, nil)
	if err != nil {
		t.Fatalf("prefix search: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Ring der Macht" {
		t.Fatalf("expected the campaign's ring only, got %+v", rows)
	}
	if rows[0].Relevance < 0 {
		t.Errorf("expected non-negative relevance, got %f", rows[0].Relevance)
	}

	// Attribute text is indexed, so canonical keys are findable.
	rows, err = c.SearchEntities(ctx, "potion", kindID, campaignID, nil)
	if err != nil {
		t.Fatalf("attribute search: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Heiltrank" {
		t.Fatalf("expected attribute hit, got %+v", rows)
	}

	// An empty expression short-circuits instead of erroring.
	rows, err = c.SearchEntities(ctx, "", kindID, campaignID, nil)
	if err != nil || len(rows) != 0 {
		t.Fatalf("empty expression: rows=%v err=%v", rows, err)
	}

	if err := c.RemoveEntity(ctx, campaignID, "item", "Ring der Macht"); err != nil {
		t.Fatalf("removing entity: %v", err)
	}
	rows, err = c.SearchEntities(ctx, "ring*", kindID, campaignID, nil)
	if err != nil {
		t.Fatalf("search after removal: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("soft-deleted entity still searchable: %+v", rows)
	}
}

func TestScanEntitiesWithRelations(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	campaignID, err := c.CreateCampaign(ctx, "Schattenreich")
	if err != nil {
		t.Fatalf("creating campaign: %v", err)
	}

	for _, in := range []store.EntityInput{
		{CampaignID: campaignID, Kind: "item", Name: "Eiserner Schlüssel"},
		{CampaignID: campaignID, Kind: "npc", Name: "Aldric"},
	} {
		if _, err := c.UpsertEntity(ctx, in); err != nil {
			t.Fatalf("seeding %s: %v", in.Name, err)
		}
	}
	if err := c.UpsertRelation(ctx, campaignID, "Eiserner Schlüssel", "Aldric", "owner", ""); err != nil {
		t.Fatalf("upserting relation: %v", err)
	}

	kindID, err := c.KindID(ctx, "item")
	if err != nil {
		t.Fatalf("resolving kind: %v", err)
	}

	rows, err := c.ScanEntities(ctx, kindID, campaignID, []string{"owner", "references"})
	if err != nil {
		t.Fatalf("scanning entities: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %+v", rows)
	}
	if rows[0].Related["owner"] != "Aldric" {
		t.Errorf("expected resolved owner, got %v", rows[0].Related)
	}
	if _, ok := rows[0].Related["references"]; ok {
		t.Errorf("expected no references entry, got %v", rows[0].Related)
	}

	// A soft-deleted target drops out of the join and shows up as dangling.
	if err := c.RemoveEntity(ctx, campaignID, "npc", "Aldric"); err != nil {
		t.Fatalf("removing owner: %v", err)
	}
	rows, err = c.ScanEntities(ctx, kindID, campaignID, []string{"owner"})
	if err != nil {
		t.Fatalf("scanning after removal: %v", err)
	}
	if _, ok := rows[0].Related["owner"]; ok {
		t.Errorf("deleted owner still resolved: %v", rows[0].Related)
	}

	dangling, err := c.ListDanglingRelations(ctx, campaignID)
	if err != nil {
		t.Fatalf("listing dangling relations: %v", err)
	}
	if len(dangling) != 1 || dangling[0].ToName != "Aldric" || dangling[0].Label != "owner" {
		t.Errorf("unexpected dangling relations: %+v", dangling)
	}
}

func TestLoadVocabularySeeded(t *testing.T) {
	c := newTestClient(t)

	entries, err := c.LoadVocabulary(context.Background())
	if err != nil {
		t.Fatalf("loading vocabulary: %v", err)
	}
	if len(entries) != len(store.DefaultVocabulary()) {
		t.Errorf("expected %d seeded entries, got %d", len(store.DefaultVocabulary()), len(entries))
	}
}

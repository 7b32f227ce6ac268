package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rhcatalog/internal/model"
)

func sampleCatalog() *model.Catalog {
	p1 := &model.ProductRecord{ASIN: "B0AAAAAAA1", Title: "Handheld One", Price: "49.99", Category: model.CategoryRetro}
	p2 := &model.ProductRecord{ASIN: "B0AAAAAAA2", Title: "Handheld Two", Price: "99.99", Category: model.CategoryRetro}
	return &model.Catalog{
		Products: []*model.ProductRecord{p1, p2},
		Categories: map[string][]*model.ProductRecord{
			model.CategoryRetro: {p1, p2},
		},
		SEOCategories: map[string][]*model.ProductRecord{
			"retro-handheld-games": {p2},
		},
		TotalProducts: 2,
		LastUpdated:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestWriteSnapshot_WritesCatalogJSON(t *testing.T) {
	dir := t.TempDir()
	snap := NewFilesystemSnapshotter(dir)
	if err := snap.WriteSnapshot("sid", sampleCatalog()); err != nil {
		t.Fatalf("WriteSnapshot error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "sid", "catalog.json")); err != nil {
		t.Fatalf("catalog.json missing: %v", err)
	}
}

func TestReadSnapshot_Roundtrip(t *testing.T) {
	dir := t.TempDir()
	snap := NewFilesystemSnapshotter(dir)
	orig := sampleCatalog()
	if err := snap.WriteSnapshot("sid", orig); err != nil {
		t.Fatalf("WriteSnapshot error: %v", err)
	}

	got, err := ReadSnapshot(dir, "sid")
	if err != nil {
		t.Fatalf("ReadSnapshot error: %v", err)
	}
	if got.TotalProducts != 2 || len(got.Products) != 2 {
		t.Fatalf("unexpected catalog: %+v", got)
	}
	if got.Products[0].ASIN != "B0AAAAAAA1" {
		t.Fatalf("product order changed: %v", got.Products[0])
	}
	if len(got.SEOCategories["retro-handheld-games"]) != 1 {
		t.Fatalf("secondary bucket lost: %v", got.SEOCategories)
	}
}

func TestReadSnapshot_RebindsBucketPointers(t *testing.T) {
	dir := t.TempDir()
	snap := NewFilesystemSnapshotter(dir)
	if err := snap.WriteSnapshot("sid", sampleCatalog()); err != nil {
		t.Fatalf("WriteSnapshot error: %v", err)
	}
	got, err := ReadSnapshot(dir, "sid")
	if err != nil {
		t.Fatalf("ReadSnapshot error: %v", err)
	}

	// JSON flattens shared references into copies; the loader must restore
	// identity so a record loaded once is the same pointer everywhere.
	if got.Categories[model.CategoryRetro][0] != got.Products[0] {
		t.Fatal("primary bucket entry is a copy, not the canonical record")
	}
	if got.SEOCategories["retro-handheld-games"][0] != got.Products[1] {
		t.Fatal("secondary bucket entry is a copy, not the canonical record")
	}
}

func TestReadSnapshot_MissingID(t *testing.T) {
	if _, err := ReadSnapshot(t.TempDir(), "nope"); err == nil {
		t.Fatal("expected error for missing snapshot")
	}
}

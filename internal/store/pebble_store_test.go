package store

import (
	"testing"

	"rhcatalog/internal/model"
)

func TestPebbleStore_PutGetRoundtrip(t *testing.T) {
	s, err := NewPebbleStore(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	rec := &model.ProductRecord{
		ASIN:   "B0AAAAAAA1",
		Title:  "Handheld One",
		Price:  "49.99",
		Rating: 4.5,
		SEOCategories: []string{
			"retro-handheld-game-console",
			"handheld-games",
		},
	}
	if err := s.Put(rec); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, ok := s.Get("B0AAAAAAA1")
	if !ok {
		t.Fatal("record missing")
	}
	if got.Title != rec.Title || got.Rating != rec.Rating {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if len(got.SEOCategories) != 2 {
		t.Fatalf("tags lost: %v", got.SEOCategories)
	}
}

func TestPebbleStore_LoadAllReplaces(t *testing.T) {
	s, err := NewPebbleStore(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	_ = s.Put(&model.ProductRecord{ASIN: "B0OLD00000"})
	s.LoadAll(sampleRecords())

	if n := s.Len(); n != 3 {
		t.Fatalf("Len = %d", n)
	}
	if _, ok := s.Get("B0OLD00000"); ok {
		t.Fatal("old record survived LoadAll")
	}
}

func TestPebbleStore_RangeVisitsAll(t *testing.T) {
	s, err := NewPebbleStore(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	s.LoadAll(sampleRecords())
	seen := map[string]bool{}
	if err := s.Range(func(rec *model.ProductRecord) error {
		seen[rec.ASIN] = true
		return nil
	}); err != nil {
		t.Fatalf("Range error: %v", err)
	}
	if len(seen) != 3 {
		t.Fatalf("saw %d records", len(seen))
	}
}

package store

import (
	"sync"
	"testing"

	"rhcatalog/internal/model"
)

func sampleRecords() []*model.ProductRecord {
	return []*model.ProductRecord{
		{ASIN: "B0AAAAAAA1", Title: "Handheld One", Price: "49.99", Rating: 4.5},
		{ASIN: "B0AAAAAAA2", Title: "Handheld Two", Price: "99.99", Rating: 4.0},
		{ASIN: "B0AAAAAAA3", Title: "Handheld Three", Price: model.PriceUnavailable},
	}
}

func TestMemoryStore_PutGet(t *testing.T) {
	s := NewMemoryStore()
	for _, rec := range sampleRecords() {
		if err := s.Put(rec); err != nil {
			t.Fatalf("Put error: %v", err)
		}
	}
	rec, ok := s.Get("B0AAAAAAA2")
	if !ok || rec.Price != "99.99" {
		t.Fatalf("Get = %+v ok=%v", rec, ok)
	}
	if _, ok := s.Get("B0MISSING0"); ok {
		t.Fatal("expected miss")
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d", s.Len())
	}
}

func TestMemoryStore_LoadAllReplaces(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Put(&model.ProductRecord{ASIN: "B0OLD00000"})

	s.LoadAll(sampleRecords())
	if s.Len() != 3 {
		t.Fatalf("Len = %d", s.Len())
	}
	if _, ok := s.Get("B0OLD00000"); ok {
		t.Fatal("old record survived LoadAll")
	}
}

func TestMemoryStore_Range(t *testing.T) {
	s := NewMemoryStore()
	s.LoadAll(sampleRecords())
	seen := map[string]bool{}
	err := s.Range(func(rec *model.ProductRecord) error {
		seen[rec.ASIN] = true
		return nil
	})
	if err != nil {
		t.Fatalf("Range error: %v", err)
	}
	if len(seen) != 3 {
		t.Fatalf("saw %d records", len(seen))
	}
}

func TestMemoryStore_ConcurrentReaders(t *testing.T) {
	s := NewMemoryStore()
	s.LoadAll(sampleRecords())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, ok := s.Get("B0AAAAAAA1"); !ok {
					t.Error("record missing under concurrent reads")
					return
				}
			}
		}()
	}
	wg.Wait()
}

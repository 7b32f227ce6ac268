package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"

	"rhcatalog/internal/model"
)

// PebbleStore implements Store using PebbleDB. Useful when the serving
// process should survive restarts without re-reading the snapshot.
type PebbleStore struct {
	db *pebble.DB
}

func NewPebbleStore(dir string) (*PebbleStore, error) {
	// The catalog is a few hundred records; default-ish options are plenty.
	opts := &pebble.Options{
		L0CompactionThreshold: 4,
		L0StopWritesThreshold: 8,
	}
	db, err := pebble.Open(filepath.Clean(dir), opts)
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

func (p *PebbleStore) Close() error { return p.db.Close() }

func encodeRecord(rec *model.ProductRecord) ([]byte, error) { return json.Marshal(rec) }

func decodeRecord(val []byte) (*model.ProductRecord, error) {
	var rec model.ProductRecord
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (p *PebbleStore) Put(rec *model.ProductRecord) error {
	b, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	if err := p.db.Set([]byte(rec.ASIN), b, pebble.NoSync); err != nil {
		return fmt.Errorf("pebble set: %w", err)
	}
	return nil
}

func (p *PebbleStore) Get(asin string) (*model.ProductRecord, bool) {
	v, closer, err := p.db.Get([]byte(asin))
	if err != nil {
		return nil, false
	}
	defer closer.Close()
	rec, err := decodeRecord(v)
	if err != nil {
		return nil, false
	}
	return rec, true
}

func (p *PebbleStore) Range(fn func(rec *model.ProductRecord) error) error {
	it, err := p.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("pebble iter: %w", err)
	}
	defer it.Close()
	for it.First(); it.Valid(); it.Next() {
		v := append([]byte(nil), it.Value()...)
		rec, err := decodeRecord(v)
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

// LoadAll replaces all keys with one catalog's product list.
func (p *PebbleStore) LoadAll(recs []*model.ProductRecord) {
	var toDelete [][]byte
	it, err := p.db.NewIter(nil)
	if err == nil {
		for it.First(); it.Valid(); it.Next() {
			toDelete = append(toDelete, append([]byte(nil), it.Key()...))
		}
		it.Close()
	}
	if len(toDelete) > 0 {
		wb := p.db.NewBatch()
		for _, k := range toDelete {
			_ = wb.Delete(k, nil)
		}
		_ = wb.Commit(pebble.NoSync)
		_ = wb.Close()
	}
	if len(recs) > 0 {
		wb := p.db.NewBatch()
		for _, rec := range recs {
			b, err := encodeRecord(rec)
			if err != nil {
				continue
			}
			_ = wb.Set([]byte(rec.ASIN), b, nil)
		}
		_ = wb.Commit(pebble.NoSync)
		_ = wb.Close()
	}
}

func (p *PebbleStore) Len() int {
	n := 0
	it, err := p.db.NewIter(nil)
	if err != nil {
		return 0
	}
	defer it.Close()
	for it.First(); it.Valid(); it.Next() {
		n++
	}
	return n
}

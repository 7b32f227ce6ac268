package store

import (
	"fmt"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v4"

	"rhcatalog/internal/model"
)

// BadgerStore implements Store using BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(filepath.Clean(dir))
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger open: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (b *BadgerStore) Close() error { return b.db.Close() }

func (b *BadgerStore) Put(rec *model.ProductRecord) error {
	val, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(rec.ASIN), val)
	})
	if err != nil {
		return fmt.Errorf("badger set: %w", err)
	}
	return nil
}

func (b *BadgerStore) Get(asin string) (*model.ProductRecord, bool) {
	var rec *model.ProductRecord
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(asin))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			r, err := decodeRecord(val)
			if err != nil {
				return err
			}
			rec = r
			return nil
		})
	})
	if err != nil {
		return nil, false
	}
	return rec, true
}

func (b *BadgerStore) Range(fn func(rec *model.ProductRecord) error) error {
	return b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				rec, err := decodeRecord(val)
				if err != nil {
					return err
				}
				return fn(rec)
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadAll drops existing keys and writes one catalog's product list.
func (b *BadgerStore) LoadAll(recs []*model.ProductRecord) {
	_ = b.db.DropAll()
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	for _, rec := range recs {
		val, err := encodeRecord(rec)
		if err != nil {
			continue
		}
		if err := wb.Set([]byte(rec.ASIN), val); err != nil {
			return
		}
	}
	_ = wb.Flush()
}

func (b *BadgerStore) Len() int {
	n := 0
	_ = b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n
}

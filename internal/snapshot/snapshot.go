package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"rhcatalog/internal/model"
)

const catalogFile = "catalog.json"

// Snapshotter persists one finished catalog under a snapshot ID.
type Snapshotter interface {
	WriteSnapshot(snapshotID string, cat *model.Catalog) error
}

type FilesystemSnapshotter struct {
	baseDir string
}

func NewFilesystemSnapshotter(baseDir string) *FilesystemSnapshotter {
	return &FilesystemSnapshotter{baseDir: baseDir}
}

func (f *FilesystemSnapshotter) WriteSnapshot(snapshotID string, cat *model.Catalog) error {
	if err := os.MkdirAll(filepath.Join(f.baseDir, snapshotID), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	out, err := os.Create(filepath.Join(f.baseDir, snapshotID, catalogFile))
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cat); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadSnapshot loads a catalog back from disk. Bucket entries are re-pointed
// at the canonical product list by ASIN, restoring the shared-reference
// index the builder produced (JSON flattens them into copies).
func ReadSnapshot(baseDir, snapshotID string) (*model.Catalog, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, snapshotID, catalogFile))
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var cat model.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	rebind(&cat)
	return &cat, nil
}

func rebind(cat *model.Catalog) {
	byASIN := make(map[string]*model.ProductRecord, len(cat.Products))
	for _, p := range cat.Products {
		byASIN[p.ASIN] = p
	}
	for _, buckets := range []map[string][]*model.ProductRecord{cat.Categories, cat.SEOCategories} {
		for slug, bucket := range buckets {
			for i, p := range bucket {
				if canonical, ok := byASIN[p.ASIN]; ok {
					bucket[i] = canonical
				}
			}
			buckets[slug] = bucket
		}
	}
}

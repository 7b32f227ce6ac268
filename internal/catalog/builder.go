package catalog

import (
	"math"
	"os"
	"sort"
	"time"

	"rhcatalog/internal/category"
	"rhcatalog/internal/enrich"
	"rhcatalog/internal/ingest"
	"rhcatalog/internal/model"
)

// Stats counts what happened during one build run.
type Stats struct {
	FilesRead     int
	FilesSkipped  int
	RowsRead      int
	RowsDropped   int
	Duplicates    int
	TagsBorrowed  int
	TagsTrimmed   int
	DescBackfills int
}

// Builder accumulates normalized records across input files. It owns all
// mutable state of a build; Build seals it into an immutable Catalog.
// Not safe for concurrent use; the build is a single-writer batch.
type Builder struct {
	products []*model.ProductRecord
	seen     map[string]struct{}
	stats    Stats
}

func NewBuilder() *Builder {
	return &Builder{seen: make(map[string]struct{})}
}

func (b *Builder) Stats() Stats { return b.stats }

// AddFile parses one export file. A missing or unreadable file is counted
// and reported but never aborts the build.
func (b *Builder) AddFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		b.stats.FilesSkipped++
		return 0, err
	}
	return b.AddSource(string(data)), nil
}

// AddSource runs the full per-row pipeline over one file's content:
// normalize, synthesize, categorize, dedupe. First occurrence of an ASIN
// wins across all sources, so source order matters for duplicate ties.
func (b *Builder) AddSource(content string) int {
	b.stats.FilesRead++
	added := 0
	for _, row := range ingest.ParseRows(content) {
		b.stats.RowsRead++
		rec, raw, ok := ingest.Normalize(row)
		if !ok {
			b.stats.RowsDropped++
			continue
		}
		if _, dup := b.seen[rec.ASIN]; dup {
			b.stats.Duplicates++
			continue
		}

		rec.Category = category.Primary(raw.Title, raw.Description, raw.About)
		rec.SEOCategories = category.SEOTags(raw.Title, raw.Description, raw.About, rec.ASIN)
		rec.Title = enrich.SynthesizeTitle(raw.Title, rec.Brand, raw.Description, raw.About)
		featureSource := raw.About
		if featureSource == "" {
			featureSource = raw.Description
		}
		rec.Features = enrich.ExtractFeatures(featureSource)
		if enrich.NeedsDescription(rec.Description) {
			rec.Description = enrich.Describe(rec)
			b.stats.DescBackfills++
		}

		b.seen[rec.ASIN] = struct{}{}
		b.products = append(b.products, rec)
		added++
	}
	return added
}

// Build groups the accumulated products into primary and secondary buckets,
// rebalances the secondary buckets, and returns the finished snapshot.
func (b *Builder) Build() *model.Catalog {
	cat := &model.Catalog{
		Products:      b.products,
		Categories:    make(map[string][]*model.ProductRecord),
		SEOCategories: make(map[string][]*model.ProductRecord),
		TotalProducts: len(b.products),
		LastUpdated:   time.Now().UTC(),
	}
	for _, tag := range model.SEOTagVocabulary {
		cat.SEOCategories[tag] = []*model.ProductRecord{}
	}
	for _, p := range b.products {
		cat.Categories[p.Category] = append(cat.Categories[p.Category], p)
		for _, tag := range p.SEOCategories {
			cat.SEOCategories[tag] = append(cat.SEOCategories[tag], p)
		}
	}
	b.rebalance(cat)
	return cat
}

// rebalance enforces per-tag bucket bounds: minimum max(3, floor(N/19)),
// maximum ceil(N/19*2). Under-full buckets borrow hash-ranked products from
// the rest of the catalog regardless of topical fit (deliberate: the filler
// keeps every landing page stocked), over-full buckets trim by the same
// ranking. The ranking key (asinSum+tagSum)%1000 with a stable sort is part
// of the frozen membership contract.
func (b *Builder) rebalance(cat *model.Catalog) {
	total := len(cat.Products)
	vocabLen := len(model.SEOTagVocabulary)
	minPer := total / vocabLen
	if minPer < 3 {
		minPer = 3
	}
	maxPer := int(math.Ceil(float64(total) / float64(vocabLen) * 2))

	for _, tag := range model.SEOTagVocabulary {
		bucket := cat.SEOCategories[tag]
		tagSum := model.CharSum(tag)

		if len(bucket) < minPer {
			needed := minPer - len(bucket)
			inBucket := make(map[string]struct{}, len(bucket))
			for _, p := range bucket {
				inBucket[p.ASIN] = struct{}{}
			}
			var available []*model.ProductRecord
			for _, p := range cat.Products {
				if _, ok := inBucket[p.ASIN]; !ok {
					available = append(available, p)
				}
			}
			sort.SliceStable(available, func(i, j int) bool {
				return rebalanceKey(available[i], tagSum) < rebalanceKey(available[j], tagSum)
			})
			if needed > len(available) {
				needed = len(available)
			}
			bucket = append(bucket, available[:needed]...)
			b.stats.TagsBorrowed += needed
		}

		if len(bucket) > maxPer {
			ranked := make([]*model.ProductRecord, len(bucket))
			copy(ranked, bucket)
			sort.SliceStable(ranked, func(i, j int) bool {
				return rebalanceKey(ranked[i], tagSum) < rebalanceKey(ranked[j], tagSum)
			})
			b.stats.TagsTrimmed += len(bucket) - maxPer
			bucket = ranked[:maxPer]
		}

		cat.SEOCategories[tag] = bucket
	}
}

func rebalanceKey(p *model.ProductRecord, tagSum int) int {
	return (model.CharSum(p.ASIN) + tagSum) % 1000
}

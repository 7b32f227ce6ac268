package enrich

import (
	"strings"
	"testing"

	"rhcatalog/internal/model"
)

func sampleRecord() *model.ProductRecord {
	return &model.ProductRecord{
		ASIN:        "AB12345678",
		Title:       "Anbernic RG35XX 3.5 Inch IPS Screen Retro Game Handheld",
		Brand:       "Anbernic",
		Price:       "49.99",
		Rating:      4.6,
		ReviewCount: 1234,
		Category:    model.CategoryRetro,
		Features: []string{
			"Over 6000 games built-in and ready to play",
			"Powered by a 3500mAh battery",
		},
	}
}

func TestDescribe_UsesCategoryStoryAndFeatures(t *testing.T) {
	got := Describe(sampleRecord())
	for _, want := range []string{
		"Step back in time",
		"3.5-inch IPS screen",
		"over 6000 preloaded games",
		"3500mAh battery",
		"At just $49.99",
		"4.6-star rating from 1,234 satisfied customers",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestDescribe_PremiumTier(t *testing.T) {
	p := sampleRecord()
	p.Price = "349.99"
	got := Describe(p)
	if !strings.Contains(got, "premium handheld console") {
		t.Fatalf("missing premium wording in:\n%s", got)
	}
}

func TestDescribe_SentinelPriceLandsInBudgetTier(t *testing.T) {
	p := sampleRecord()
	p.Price = model.PriceUnavailable
	got := Describe(p)
	if !strings.Contains(got, "At just $0") {
		t.Fatalf("missing budget wording for unpriced record in:\n%s", got)
	}
}

func TestDescribe_NoFeatureSignals(t *testing.T) {
	p := sampleRecord()
	p.Title = "Generic Retro Game Handheld"
	p.Features = nil
	got := Describe(p)
	if !strings.Contains(got, "intuitive design with responsive controls") {
		t.Fatalf("missing fallback paragraph in:\n%s", got)
	}
}

func TestDescribe_UnknownCategoryFallsBack(t *testing.T) {
	p := sampleRecord()
	p.Category = "something-else"
	got := Describe(p)
	if !strings.Contains(got, "Discover the perfect retro gaming companion") {
		t.Fatalf("missing default story in:\n%s", got)
	}
}

package model

import (
	"math"
	"regexp"
	"strconv"
	"time"
)

// PriceUnavailable is the sentinel shown when a raw price is missing or
// outside the accepted range.
const PriceUnavailable = "Check Price"

// Primary category slugs (closed set).
const (
	CategoryRetro    = "retro-handheld"
	CategoryLinux    = "linux-handheld"
	CategoryAndroid  = "android-handheld"
	CategoryCloud    = "cloud-gaming"
	CategoryKids     = "kids-handheld"
	CategoryHandheld = "handheld-consoles" // default
)

// SEOTagVocabulary is the fixed 19-tag vocabulary for secondary categories.
// Index order is a frozen contract: tag assignment and bucket rebalancing
// both derive from positions in this slice, and existing category URLs
// depend on the resulting memberships.
var SEOTagVocabulary = []string{
	"retro-handheld-game-console",
	"handheld-retro-game-console",
	"retro-game-handheld",
	"best-handheld-retro-game-console",
	"retro-game-handheld-console",
	"retro-handheld-game",
	"handheld-game-console-retro",
	"best-retro-handheld-game-console",
	"retro-game-console-handheld",
	"retro-game-handhelds",
	"retro-gamer-handheld",
	"retro-games-handheld",
	"handheld-retro-games",
	"retro-handheld-games",
	"handheld-games",
	"best-handheld-games",
	"game-console",
	"portable-handheld",
	"portable-handheld-games",
}

// Dimensions carries unvalidated passthrough measurements.
type Dimensions struct {
	Length string `json:"length"`
	Width  string `json:"width"`
	Height string `json:"height"`
	Weight string `json:"weight"`
}

// ProductRecord is one catalog entry. Immutable once the build finishes.
type ProductRecord struct {
	ASIN          string     `json:"asin"`
	Title         string     `json:"title"`
	Price         string     `json:"price"`
	Rating        float64    `json:"rating"`
	ReviewCount   int        `json:"reviewCount"`
	Image         string     `json:"image"`
	URL           string     `json:"url"`
	Description   string     `json:"description"`
	Brand         string     `json:"brand"`
	Category      string     `json:"category"`
	SEOCategories []string   `json:"seoCategories"`
	Features      []string   `json:"features"`
	Dimensions    Dimensions `json:"dimensions"`
}

// Catalog is the materialized snapshot of one build run. Bucket slices hold
// references into Products, never copies.
type Catalog struct {
	Products      []*ProductRecord            `json:"products"`
	Categories    map[string][]*ProductRecord `json:"categories"`
	SEOCategories map[string][]*ProductRecord `json:"seoCategories"`
	TotalProducts int                         `json:"totalProducts"`
	LastUpdated   time.Time                   `json:"lastUpdated"`
}

var nonPriceRe = regexp.MustCompile(`[^0-9.]`)

// PriceValue parses the display price back into a number. The sentinel and
// anything unparsable come back as 0, which every price filter treats as
// "not priced".
func PriceValue(price string) float64 {
	cleaned := nonPriceRe.ReplaceAllString(price, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// WeightedScore ranks a product by rating x ln(reviews+1), balancing quality
// against popularity.
func WeightedScore(p *ProductRecord) float64 {
	return p.Rating * math.Log(float64(p.ReviewCount)+1)
}

// CharSum is the deterministic hash shared by tag assignment and bucket
// rebalancing: the sum of character codes of s. Frozen contract, do not
// replace with a real hash.
func CharSum(s string) int {
	sum := 0
	for _, r := range s {
		sum += int(r)
	}
	return sum
}

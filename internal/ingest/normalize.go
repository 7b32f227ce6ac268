package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"rhcatalog/internal/model"
)

const maxBrandLen = 50

var (
	asinRe         = regexp.MustCompile(`^[A-Za-z0-9]{10,}$`)
	nonPriceCharRe = regexp.MustCompile(`[^0-9.]`)
	trailingDotsRe = regexp.MustCompile(`\.+$`)
	nonDigitRe     = regexp.MustCompile(`[^0-9]`)
	visitPrefixRe  = regexp.MustCompile(`(?i)^Visit the `)
	storeSuffixRe  = regexp.MustCompile(`(?i) Store$`)
	leadingFloatRe = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)`)
)

// Raw carries the free-text columns that later pipeline stages
// (categorization, title synthesis, feature extraction) consume.
type Raw struct {
	Title       string
	Description string
	About       string
}

// Normalize validates and cleans one parsed row. ok is false when the row
// has no usable identifier; such rows are dropped without error. Field-level
// problems never fail the row: prices fall back to the sentinel, ratings and
// review counts coerce to zero.
func Normalize(row map[string]string) (*model.ProductRecord, Raw, bool) {
	asin := strings.TrimSpace(firstValue(row, "Asin", "ASIN"))
	if asin == "" || asin == "N/A" || utf8.RuneCountInString(asin) < 10 || !asinRe.MatchString(asin) {
		return nil, Raw{}, false
	}
	asin = strings.ToUpper(asin[:10])

	raw := Raw{
		Title:       row["Title"],
		Description: row["Description"],
		About:       row["About"],
	}

	rec := &model.ProductRecord{
		ASIN:        asin,
		Price:       cleanPrice(row["Price"]),
		Rating:      cleanRating(row["Rating"]),
		ReviewCount: cleanReviewCount(row["Total Review"]),
		Brand:       CleanBrand(firstValue(row, "Brand", "Manufacturer")),
		Image:       strings.TrimSpace(row["Product Image Url"]),
		URL:         productURL(row["Product Url"], asin),
		Description: strings.TrimSpace(firstValue(row, "Description", "About")),
		Dimensions: model.Dimensions{
			Length: row["Long Dimension"],
			Width:  row["Width Dimension"],
			Height: row["Height Dimension"],
			Weight: row["Weight"],
		},
	}
	return rec, raw, true
}

// cleanPrice strips currency decoration and validates the numeric value
// against (0, 2000]. Anything else renders the sentinel, never an error.
// Parsing is lenient: the longest numeric prefix wins, so a range price like
// "$19.99 - $29.99" reads as 19.99 rather than failing on the second dot.
func cleanPrice(raw string) string {
	cleaned := nonPriceCharRe.ReplaceAllString(raw, "")
	cleaned = trailingDotsRe.ReplaceAllString(cleaned, "")
	v := parseLeadingFloat(cleaned)
	if v <= 0 || v > 2000 {
		return model.PriceUnavailable
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func cleanRating(raw string) float64 {
	r := parseLeadingFloat(raw)
	if r < 0 || r > 5 {
		return 0
	}
	return r
}

func cleanReviewCount(raw string) int {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n > 10_000_000 {
		return 0
	}
	return n
}

// CleanBrand strips Amazon storefront boilerplate and falls back to Generic
// for empty or over-long values.
func CleanBrand(raw string) string {
	b := strings.TrimSpace(raw)
	if b == "" {
		b = "Generic"
	}
	b = strings.TrimSpace(storeSuffixRe.ReplaceAllString(visitPrefixRe.ReplaceAllString(b, ""), ""))
	if b == "" || utf8.RuneCountInString(b) > maxBrandLen {
		return "Generic"
	}
	return b
}

func productURL(raw, asin string) string {
	if raw == "" {
		return "https://www.amazon.com/dp/" + asin
	}
	return strings.TrimSpace(raw)
}

// parseLeadingFloat mimics lenient numeric parsing: the longest numeric
// prefix wins, so "4.5 out of 5" reads as 4.5. No prefix reads as 0.
func parseLeadingFloat(s string) float64 {
	m := leadingFloatRe.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

func firstValue(row map[string]string, keys ...string) string {
	for _, k := range keys {
		if row[k] != "" {
			return row[k]
		}
	}
	return ""
}

package snapshot

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"rhcatalog/internal/model"
)

var productColumns = []struct {
	name    string
	sqlType string
}{
	{"asin", "TEXT"},
	{"title", "TEXT"},
	{"price", "TEXT"},
	{"rating", "REAL"},
	{"review_count", "INTEGER"},
	{"brand", "TEXT"},
	{"category", "TEXT"},
	{"seo_categories", "TEXT"},
	{"features", "TEXT"},
	{"image_url", "TEXT"},
	{"product_url", "TEXT"},
	{"description", "TEXT"},
	{"dim_length", "TEXT"},
	{"dim_width", "TEXT"},
	{"dim_height", "TEXT"},
	{"dim_weight", "TEXT"},
}

// ExportSQLite writes the product table as a queryable companion artifact
// beside the JSON snapshot. The file is replaced wholesale each build.
func ExportSQLite(path string, cat *model.Catalog) error {
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	defs := make([]string, 0, len(productColumns))
	names := make([]string, 0, len(productColumns))
	for _, c := range productColumns {
		defs = append(defs, fmt.Sprintf("%q %s", c.name, c.sqlType))
		names = append(names, fmt.Sprintf("%q", c.name))
	}
	if _, err := db.Exec(`CREATE TABLE "products" (` + strings.Join(defs, ",") + `)`); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	placeholders := strings.TrimRight(strings.Repeat("?,", len(productColumns)), ",")
	stmt, err := db.Prepare(`INSERT INTO "products" (` + strings.Join(names, ",") + `) VALUES (` + placeholders + `)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range cat.Products {
		if _, err := stmt.Exec(
			p.ASIN, p.Title, p.Price, p.Rating, p.ReviewCount, p.Brand, p.Category,
			strings.Join(p.SEOCategories, "|"), strings.Join(p.Features, "|"),
			p.Image, p.URL, p.Description,
			p.Dimensions.Length, p.Dimensions.Width, p.Dimensions.Height, p.Dimensions.Weight,
		); err != nil {
			return fmt.Errorf("insert %s: %w", p.ASIN, err)
		}
	}

	for _, idx := range []string{
		`CREATE UNIQUE INDEX idx_products_asin ON products(asin)`,
		`CREATE INDEX idx_products_brand ON products(brand)`,
		`CREATE INDEX idx_products_category ON products(category)`,
	} {
		if _, err := db.Exec(idx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

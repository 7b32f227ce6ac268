package snapshot

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestExportSQLite_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.sqlite")
	if err := ExportSQLite(path, sampleCatalog()); err != nil {
		t.Fatalf("ExportSQLite error: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("row count = %d", n)
	}

	var title, price string
	err = db.QueryRow(`SELECT title, price FROM products WHERE asin = ?`, "B0AAAAAAA1").Scan(&title, &price)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if title != "Handheld One" || price != "49.99" {
		t.Fatalf("got %q %q", title, price)
	}
}

func TestExportSQLite_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.sqlite")
	if err := ExportSQLite(path, sampleCatalog()); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if err := ExportSQLite(path, sampleCatalog()); err != nil {
		t.Fatalf("second export: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("row count after replace = %d", n)
	}
}

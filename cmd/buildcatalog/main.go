package main

import (
	"errors"
	"flag"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"rhcatalog/internal/catalog"
	"rhcatalog/internal/manifest"
	"rhcatalog/internal/model"
	"rhcatalog/internal/snapshot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Config holds CLI flags for the catalog builder.
type Config struct {
	InputDir     string
	Files        string // comma-separated, overrides InputDir glob
	SnapshotDir  string
	SQLitePath   string // empty disables the export
	ManifestSink string // file|kafka|both
	Bootstrap    string
	Topic        string
}

func main() {
	cfg := readFlags()
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := run(cfg, log); err != nil {
		log.Fatalf("build failed: %v", err)
	}
}

func readFlags() Config {
	var cfg Config
	flag.StringVar(&cfg.InputDir, "input-dir", "./data", "directory scanned for *.csv exports")
	flag.StringVar(&cfg.Files, "files", "", "comma-separated csv paths (overrides -input-dir)")
	flag.StringVar(&cfg.SnapshotDir, "snapshot-dir", "./snapshots", "snapshot directory")
	flag.StringVar(&cfg.SQLitePath, "sqlite", "", "also export the catalog to this sqlite file")
	flag.StringVar(&cfg.ManifestSink, "manifest-sink", "file", "manifest sink: file|kafka|both")
	flag.StringVar(&cfg.Bootstrap, "kafka-bootstrap", "", "kafka bootstrap servers, e.g. localhost:9092")
	flag.StringVar(&cfg.Topic, "topic-snapshots", "catalog.snapshots", "kafka topic for manifests (compacted)")
	flag.Parse()
	return cfg
}

func run(cfg Config, log *logrus.Logger) error {
	files, err := inputFiles(cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Warnf("no csv files under %s, building an empty catalog", cfg.InputDir)
	}

	b := catalog.NewBuilder()
	for _, path := range files {
		rows, err := b.AddFile(path)
		if err != nil {
			log.WithError(err).Warnf("skipping %s", path)
			continue
		}
		log.Infof("ingested %s rows=%d", path, rows)
	}

	cat := b.Build()
	stats := b.Stats()
	log.WithFields(logrus.Fields{
		"files_read":    stats.FilesRead,
		"files_skipped": stats.FilesSkipped,
		"rows_read":     stats.RowsRead,
		"rows_dropped":  stats.RowsDropped,
		"duplicates":    stats.Duplicates,
		"backfills":     stats.DescBackfills,
		"tags_borrowed": stats.TagsBorrowed,
		"tags_trimmed":  stats.TagsTrimmed,
	}).Infof("catalog built products=%d", cat.TotalProducts)
	logCategorySizes(log, cat)

	id := snapshotID(time.Now().UTC())
	snap := snapshot.NewFilesystemSnapshotter(cfg.SnapshotDir)
	if err := snap.WriteSnapshot(id, cat); err != nil {
		return err
	}
	log.Infof("snapshot written: %s", id)

	if cfg.SQLitePath != "" {
		if err := snapshot.ExportSQLite(cfg.SQLitePath, cat); err != nil {
			return err
		}
		log.Infof("sqlite export written: %s", cfg.SQLitePath)
	}

	pub, err := manifestSink(cfg)
	if err != nil {
		return err
	}
	if err := pub.PublishLatest(id, cat.TotalProducts); err != nil {
		return err
	}
	log.Infof("manifest published: %s", id)
	return nil
}

func inputFiles(cfg Config) ([]string, error) {
	if cfg.Files != "" {
		var files []string
		for _, f := range strings.Split(cfg.Files, ",") {
			if f = strings.TrimSpace(f); f != "" {
				files = append(files, f)
			}
		}
		return files, nil
	}
	files, err := filepath.Glob(filepath.Join(cfg.InputDir, "*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func logCategorySizes(log *logrus.Logger, cat *model.Catalog) {
	slugs := make([]string, 0, len(cat.Categories))
	for slug := range cat.Categories {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	for _, slug := range slugs {
		log.Infof("category %s: %d products", slug, len(cat.Categories[slug]))
	}
	for _, tag := range model.SEOTagVocabulary {
		log.Infof("tag %s: %d products", tag, len(cat.SEOCategories[tag]))
	}
}

func snapshotID(now time.Time) string {
	return "catalog-" + now.Format("20060102T150405Z") + "-" + uuid.NewString()[:8]
}

func manifestSink(cfg Config) (manifest.Publisher, error) {
	fs := manifest.NewFilesystemManifest(cfg.SnapshotDir)
	switch cfg.ManifestSink {
	case "", "file":
		return fs, nil
	case "kafka":
		if cfg.Bootstrap == "" {
			return nil, errNoBootstrap
		}
		return manifest.NewKafkaManifest(cfg.Bootstrap, cfg.Topic, "catalog-manifest-latest"), nil
	case "both":
		if cfg.Bootstrap == "" {
			return nil, errNoBootstrap
		}
		return manifest.MultiPublisher(fs, manifest.NewKafkaManifest(cfg.Bootstrap, cfg.Topic, "catalog-manifest-latest")), nil
	default:
		return nil, errBadSink
	}
}

var (
	errNoBootstrap = errors.New("manifest sink needs -kafka-bootstrap")
	errBadSink     = errors.New("manifest sink must be file, kafka or both")
)

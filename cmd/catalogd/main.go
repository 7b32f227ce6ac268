package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"rhcatalog/internal/manifest"
	"rhcatalog/internal/metrics"
	"rhcatalog/internal/model"
	"rhcatalog/internal/query"
	"rhcatalog/internal/snapshot"
	"rhcatalog/internal/store"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// Config is read from CATALOGD_* environment variables, with flags taking
// precedence when set.
type Config struct {
	ListenAddr     string        `envconfig:"LISTEN_ADDR" default:":8080"`
	SnapshotDir    string        `envconfig:"SNAPSHOT_DIR" default:"./snapshots"`
	ManifestSource string        `envconfig:"MANIFEST_SOURCE" default:"file"` // file|kafka
	Bootstrap      string        `envconfig:"KAFKA_BOOTSTRAP"`
	Topic          string        `envconfig:"TOPIC_SNAPSHOTS" default:"catalog.snapshots"`
	StoreBackend   string        `envconfig:"STORE_BACKEND" default:"memory"` // memory|pebble|badger
	StoreDir       string        `envconfig:"STORE_DIR" default:"./data/catalogd"`
	PollInterval   time.Duration `envconfig:"POLL_INTERVAL" default:"30s"`
}

type server struct {
	cfg     Config
	log     *logrus.Logger
	metrics *metrics.Metrics
	reader  manifest.Reader
	st      store.Store

	current atomic.Value // *loadedSnapshot, nil until first load
}

type loadedSnapshot struct {
	id      string
	created time.Time
	svc     *query.Service
}

func main() {
	var cfg Config
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := envconfig.Process("catalogd", &cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	flag.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "http listen address")
	flag.StringVar(&cfg.SnapshotDir, "snapshot-dir", cfg.SnapshotDir, "snapshot directory")
	flag.StringVar(&cfg.ManifestSource, "manifest-source", cfg.ManifestSource, "manifest source: file|kafka")
	flag.StringVar(&cfg.Bootstrap, "kafka-bootstrap", cfg.Bootstrap, "kafka bootstrap servers")
	flag.StringVar(&cfg.Topic, "topic-snapshots", cfg.Topic, "kafka topic for manifests")
	flag.StringVar(&cfg.StoreBackend, "store-backend", cfg.StoreBackend, "record store: memory|pebble|badger")
	flag.StringVar(&cfg.StoreDir, "store-dir", cfg.StoreDir, "record store directory")
	flag.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "manifest poll interval")
	flag.Parse()

	if err := run(cfg, log); err != nil {
		log.Fatalf("catalogd failed: %v", err)
	}
}

func run(cfg Config, log *logrus.Logger) error {
	st, closer, err := openStore(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	s := &server{
		cfg:     cfg,
		log:     log,
		metrics: metrics.New(),
		reader:  manifestReader(cfg),
		st:      st,
	}

	if err := s.reload(); err != nil {
		log.WithError(err).Warn("no snapshot available yet, serving 503 until one appears")
	}
	go s.pollLoop()

	r := mux.NewRouter()
	r.Use(s.requestLogger)
	r.HandleFunc("/products/{asin}", s.handleProduct).Methods(http.MethodGet)
	r.HandleFunc("/category/{slug}", s.handleCategory).Methods(http.MethodGet)
	r.HandleFunc("/rankings/top-rated", s.ranking(func(q *query.Service, n int) []*model.ProductRecord { return q.TopRated(n) })).Methods(http.MethodGet)
	r.HandleFunc("/rankings/featured", s.ranking(func(q *query.Service, n int) []*model.ProductRecord { return q.Featured(n) })).Methods(http.MethodGet)
	r.HandleFunc("/rankings/community", s.ranking(func(q *query.Service, n int) []*model.ProductRecord { return q.CommunityFavorites(n) })).Methods(http.MethodGet)
	r.HandleFunc("/rankings/editors-picks", s.ranking(func(q *query.Service, n int) []*model.ProductRecord { return q.EditorsPicks(n) })).Methods(http.MethodGet)
	r.HandleFunc("/rankings/budget", s.ranking(func(q *query.Service, n int) []*model.ProductRecord { return q.BudgetFriendly(n) })).Methods(http.MethodGet)
	r.HandleFunc("/rankings/premium", s.ranking(func(q *query.Service, n int) []*model.ProductRecord { return q.Premium(n) })).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	log.Infof("catalogd listening on %s backend=%s", cfg.ListenAddr, cfg.StoreBackend)
	return http.ListenAndServe(cfg.ListenAddr, r)
}

func openStore(cfg Config) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case "pebble":
		ps, err := store.NewPebbleStore(cfg.StoreDir)
		if err != nil {
			return nil, nil, err
		}
		return ps, func() { _ = ps.Close() }, nil
	case "badger":
		bs, err := store.NewBadgerStore(cfg.StoreDir)
		if err != nil {
			return nil, nil, err
		}
		return bs, func() { _ = bs.Close() }, nil
	default:
		return store.NewMemoryStore(), nil, nil
	}
}

func manifestReader(cfg Config) manifest.Reader {
	if cfg.ManifestSource == "kafka" && cfg.Bootstrap != "" {
		return manifest.NewKafkaReader([]string{cfg.Bootstrap}, cfg.Topic, "catalog-manifest-latest")
	}
	return manifest.NewFilesystemManifest(cfg.SnapshotDir)
}

func (s *server) pollLoop() {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()
	for range ticker.C {
		if err := s.reload(); err != nil {
			s.log.WithError(err).Warn("snapshot reload failed")
		}
		if cur := s.loaded(); cur != nil {
			s.metrics.SnapshotAgeSeconds.Set(time.Since(cur.created).Seconds())
		}
	}
}

// reload re-reads the manifest and swaps the serving snapshot in when its id
// changed. Readers on the old snapshot finish undisturbed.
func (s *server) reload() error {
	m, err := s.reader.ReadLatest()
	if err != nil {
		return err
	}
	if cur := s.loaded(); cur != nil && cur.id == m.SnapshotID {
		return nil
	}

	t0 := time.Now()
	cat, err := snapshot.ReadSnapshot(s.cfg.SnapshotDir, m.SnapshotID)
	if err != nil {
		return err
	}
	s.st.LoadAll(cat.Products)
	created := time.Unix(m.CreatedAtEpochSecond, 0).UTC()
	s.current.Store(&loadedSnapshot{
		id:      m.SnapshotID,
		created: created,
		svc:     query.New(cat, s.st),
	})

	s.metrics.SnapshotLoadSeconds.Set(time.Since(t0).Seconds())
	s.metrics.SnapshotAgeSeconds.Set(time.Since(created).Seconds())
	s.metrics.ProductsTotal.Set(float64(cat.TotalProducts))
	s.log.Infof("snapshot loaded: %s products=%d", m.SnapshotID, cat.TotalProducts)
	return nil
}

func (s *server) loaded() *loadedSnapshot {
	cur, _ := s.current.Load().(*loadedSnapshot)
	return cur
}

func (s *server) handleProduct(w http.ResponseWriter, r *http.Request) {
	cur := s.loaded()
	if cur == nil {
		writeError(w, http.StatusServiceUnavailable, "no snapshot loaded")
		return
	}
	p, ok := cur.svc.ByASIN(mux.Vars(r)["asin"])
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, p)
}

func (s *server) handleCategory(w http.ResponseWriter, r *http.Request) {
	cur := s.loaded()
	if cur == nil {
		writeError(w, http.StatusServiceUnavailable, "no snapshot loaded")
		return
	}
	out := cur.svc.ByCategory(mux.Vars(r)["slug"])
	if limit, _ := strconv.Atoi(r.URL.Query().Get("limit")); limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	writeJSON(w, out)
}

func (s *server) ranking(list func(*query.Service, int) []*model.ProductRecord) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cur := s.loaded()
		if cur == nil {
			writeError(w, http.StatusServiceUnavailable, "no snapshot loaded")
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		writeJSON(w, list(cur.svc, limit))
	}
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{"status": "ok"}
	if cur := s.loaded(); cur != nil {
		body["snapshotId"] = cur.id
		body["products"] = cur.svc.Catalog().TotalProducts
		body["snapshotAgeSeconds"] = int(time.Since(cur.created).Seconds())
	} else {
		body["status"] = "waiting"
	}
	writeJSON(w, body)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		t0 := time.Now()
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cr := mux.CurrentRoute(r); cr != nil {
			if tmpl, err := cr.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(t0).String(),
		}).Info("request")
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

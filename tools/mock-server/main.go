// Package main implements a mock CardTrader marketplace API for local
// development. It serves listings from a JSON fixture so the watcher can run
// without real credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/donaldgifford/card-price-watcher/internal/cardtrader"
)

type fixture map[string][]cardtrader.Product

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/products.json", "path to products fixture")
	drift := flag.Int64("drift", 0, "cents added to every price on odd-numbered requests, to provoke change events")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fx, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "blueprints", len(fx))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock CardTrader server", "addr", addr, "base_url", "http://localhost"+addr+"/api/v2")

	srv := &http.Server{
		Addr:         addr,
		Handler:      newMux(logger, fx, *drift),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMux(logger *slog.Logger, fx fixture, drift int64) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/marketplace/products", productsHandler(logger, fx, drift))
	return requestLogger(logger, mux)
}

func loadFixture(path string) (fixture, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return fx, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func productsHandler(logger *slog.Logger, fx fixture, drift int64) http.HandlerFunc {
	var requests atomic.Int64

	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			logger.Warn("products request missing bearer token")
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		q := r.URL.Query()
		id := q.Get("blueprint_id")
		if id == "" {
			writeError(w, http.StatusUnprocessableEntity, "blueprint_id or expansion_id is required")
			return
		}
		lang := strings.ToLower(q.Get("language"))

		n := requests.Add(1)
		offset := int64(0)
		if n%2 == 1 {
			offset = drift
		}

		matched := make([]cardtrader.Product, 0, len(fx[id]))
		for _, p := range fx[id] {
			if lang != "" && (p.Properties.MTGLanguage == nil || strings.ToLower(*p.Properties.MTGLanguage) != lang) {
				continue
			}
			p.Price.Cents += offset
			matched = append(matched, p)
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(map[string][]cardtrader.Product{id: matched})
		logger.Info("products", "blueprint_id", id, "language", lang, "returned", len(matched), "drift", offset)
	}
}

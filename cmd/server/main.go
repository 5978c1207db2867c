package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"

	"github.com/havenwell/Haven/internal/api"
	dbstore "github.com/havenwell/Haven/internal/db"
	"github.com/havenwell/Haven/internal/middleware"
	"github.com/havenwell/Haven/internal/utils"
)

func main() {
	// Optional .env for local development; real deployments set env directly.
	_ = godotenv.Load()

	addr := utils.SafeEnv("HAVEN_ADDR", ":8080")
	commit := os.Getenv("HAVEN_COMMIT")
	buildTime := os.Getenv("HAVEN_BUILD_TIME")

	store, err := openStore()
	if err != nil {
		log.Fatalf("store init: %v", err)
	}

	mux := http.NewServeMux()
	api.NewRouter(store).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		locale := middleware.LocaleFromContext(r.Context())
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "Haven API",
			"locale":     locale,
			"msg":        utils.T(locale, "health.ok"),
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	// Static frontend when bundled into the image.
	if staticDir := os.Getenv("HAVEN_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.CORS(
		middleware.SecureHeaders(
			middleware.NoStore(
				middleware.LocaleMiddleware(
					middleware.WithAuth(mux)))))

	log.Printf("Haven server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore picks SQLite when HAVEN_DB_PATH is set and falls back to the
// in-memory store for dev mode.
func openStore() (api.Store, error) {
	dbPath := os.Getenv("HAVEN_DB_PATH")
	if dbPath == "" {
		log.Printf("HAVEN_DB_PATH not set, using in-memory store")
		return api.NewMemoryStore(), nil
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(dbPath))
	sqliteDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := dbstore.RunMigrations(sqliteDB, os.Getenv("HAVEN_MIGRATIONS_DIR")); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return dbstore.NewStore(sqliteDB)
}

package network

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lixenwraith/pixel-angler/economy"
	"github.com/lixenwraith/pixel-angler/engine"
	"github.com/lixenwraith/pixel-angler/gear"
	"github.com/lixenwraith/pixel-angler/status"
)

// Feed is the snapshot source spectators follow
type Feed interface {
	Subscribe(interval time.Duration, fn func(engine.Snapshot)) (unsubscribe func())
	Latest() (engine.Snapshot, bool)
}

// Holdings exposes a read-only view of the ledger
type Holdings interface {
	State() economy.State
}

// Sources are the read-only views the spectator server publishes
type Sources struct {
	Feed     Feed
	Holdings Holdings
	Catalog  *gear.Catalog
	Registry *status.Registry
}

// NewRouter builds the HTTP surface: JSON views under /api and the live feed on /ws
func NewRouter(src Sources, cfg *Config, logger *slog.Logger) http.Handler {
	r, _ := newRouter(src, cfg, logger)
	return r
}

func newRouter(src Sources, cfg *Config, logger *slog.Logger) (*chi.Mux, *spectatorHandler) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", func(w http.ResponseWriter, r *http.Request) {
			snap, ok := src.Feed.Latest()
			if !ok {
				writeJSONStatus(w, http.StatusServiceUnavailable, errorBody{Error: "no snapshot yet"})
				return
			}
			writeJSON(w, snap)
		})
		r.Get("/ledger", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, src.Holdings.State())
		})
		r.Get("/gear", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, src.Catalog.All())
		})
		r.Get("/gear/{id}", func(w http.ResponseWriter, r *http.Request) {
			g, ok := src.Catalog.Lookup(chi.URLParam(r, "id"))
			if !ok {
				writeJSONStatus(w, http.StatusNotFound, errorBody{Error: "unknown gear"})
				return
			}
			writeJSON(w, g)
		})
		r.Get("/stats", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, src.Registry.Snapshot())
		})
	})

	spectators := newSpectatorHandler(src, cfg, logger)
	r.Handle("/ws", spectators)
	return r, spectators
}

func writeJSON(w http.ResponseWriter, payload any) {
	writeJSONStatus(w, http.StatusOK, payload)
}

func writeJSONStatus(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

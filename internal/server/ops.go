// Package server exposes a small operations HTTP surface for a headless bot:
// liveness and build info. Chat traffic never goes through here.
package server

import (
	"encoding/json"
	"net/http"

	"clanwatch/internal/config"
	"clanwatch/internal/middleware"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type OpsServer struct {
	cfg    *config.Config
	logger zerolog.Logger
}

func NewOpsServer(cfg *config.Config, logger zerolog.Logger) *OpsServer {
	return &OpsServer{cfg: cfg, logger: logger}
}

// Handler builds the ops mux wrapped in request-ID logging and CORS.
func (s *OpsServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/version", s.handleVersion)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	return middleware.RequestID(s.logger)(c.Handler(mux))
}

func (s *OpsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *OpsServer) handleVersion(w http.ResponseWriter, r *http.Request) {
	v := s.cfg.Version
	writeJSON(w, map[string]string{
		"sha":    v.SHA,
		"ref":    v.Ref,
		"time":   v.Time,
		"author": v.Author,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

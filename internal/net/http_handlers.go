// Package net provides the HTTP surface around the game core: health,
// diagnostics, the protocol schema, the websocket endpoint, and static
// client assets.
package net

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"github.com/gorilla/mux"

	"kitchen-rush/server/internal/game"
	"kitchen-rush/server/internal/net/proto"
	"kitchen-rush/server/internal/net/ws"
	"kitchen-rush/server/internal/telemetry"
	"kitchen-rush/server/logging"
)

// RouterConfig carries everything the HTTP surface exposes.
type RouterConfig struct {
	Registry  *game.Registry
	Metrics   *logging.Metrics
	LogRouter *logging.Router
	Logger    telemetry.Logger
	// ClientDir, when set, is served at / for the bundled browser client.
	ClientDir string
}

// NewRouter builds the full route table.
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", handleHealth).Methods(nethttp.MethodGet)
	r.HandleFunc("/diagnostics", handleDiagnostics(cfg)).Methods(nethttp.MethodGet)
	r.HandleFunc("/schema", handleSchema).Methods(nethttp.MethodGet)

	wsHandler := ws.NewHandler(cfg.Registry, ws.HandlerConfig{
		Logger:  cfg.Logger,
		Metrics: telemetry.WrapMetrics(cfg.Metrics),
	})
	r.HandleFunc("/ws", wsHandler.Handle)

	if cfg.ClientDir != "" {
		r.PathPrefix("/").Handler(nethttp.FileServer(nethttp.Dir(cfg.ClientDir)))
	}
	return r
}

func handleHealth(w nethttp.ResponseWriter, r *nethttp.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte("ok"))
}

func handleDiagnostics(cfg RouterConfig) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		payload := struct {
			Status     string             `json:"status"`
			ServerTime int64              `json:"serverTime"`
			Rooms      []game.Diagnostics `json:"rooms"`
			Telemetry  map[string]uint64  `json:"telemetry,omitempty"`
			Events     uint64             `json:"eventsTotal"`
			Dropped    uint64             `json:"eventsDropped"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UnixMilli(),
		}
		if cfg.Registry != nil {
			payload.Rooms = cfg.Registry.DiagnosticsSnapshot()
		}
		if cfg.Metrics != nil {
			payload.Telemetry = cfg.Metrics.Snapshot()
		}
		if cfg.LogRouter != nil {
			stats := cfg.LogRouter.Stats()
			payload.Events = stats.EventsTotal
			payload.Dropped = stats.DroppedTotal
		}
		writeJSON(w, payload)
	}
}

func handleSchema(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, proto.Schema())
}

func writeJSON(w nethttp.ResponseWriter, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		nethttp.Error(w, "failed to encode", nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"

	pingTimeout = 2 * time.Second
)

// Response состояние сервиса
type Response struct {
	Status     string `json:"status"`
	Storage    string `json:"storage"`
	IndexReady bool   `json:"indexReady"`
	SnapshotID string `json:"snapshotId,omitempty"`
	BuiltAt    string `json:"builtAt,omitempty"`
}

type Handler struct {
	index  IndexReader
	pinger Pinger
	logger Logger
}

// NewHandler pinger может быть nil, тогда хранилище не проверяется
func NewHandler(index IndexReader, pinger Pinger, logger Logger) *Handler {
	return &Handler{index: index, pinger: pinger, logger: logger}
}

// Handle GET /health
// 503 только при недоступном хранилище: без индекса сервис отвечает по принципу fail-open
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resp := Response{Status: statusOK, Storage: "skipped"}

	if idx := h.index.Current(); idx != nil {
		resp.IndexReady = true
		resp.SnapshotID = idx.ID().String()
		resp.BuiltAt = idx.BuiltAt().UTC().Format(time.RFC3339)
	}

	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := h.pinger.PingContext(ctx); err != nil {
			h.logger.Warn("GET /health - Storage ping failed: %v", err)
			resp.Status = statusDegraded
			resp.Storage = "unavailable"
			handlers.RespondJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Storage = statusOK
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

package http

import (
	"net/http"

	"github.com/vncsmyrnk/raffle/internal/core/ports"
)

type HealthHandler struct {
	store ports.ParticipantStore
}

func NewHealthHandler(store ports.ParticipantStore) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	w.Write([]byte("ok"))
}

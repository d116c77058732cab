// Package handlers wires the HTTP surface: sync state, channel
// management, auth actions, RSS and HTML renditions of the latest
// snapshot.
package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"yt-curator/internal/auth"
	"yt-curator/internal/blob"
	"yt-curator/internal/models"
	"yt-curator/internal/registry"
	"yt-curator/internal/render"
	"yt-curator/internal/syncstate"
	"yt-curator/pkg/tasks"
)

type Handlers struct {
	registry      *registry.Registry
	sync          *syncstate.Manager
	auth          *auth.Service
	store         blob.Store
	snapshotDocID string
	asynqClient   tasks.TaskEnqueuer
	renderer      *render.Renderer
}

func New(reg *registry.Registry, sync *syncstate.Manager, authSvc *auth.Service, store blob.Store, snapshotDocID string, asynqClient tasks.TaskEnqueuer, renderer *render.Renderer) *Handlers {
	return &Handlers{
		registry:      reg,
		sync:          sync,
		auth:          authSvc,
		store:         store,
		snapshotDocID: snapshotDocID,
		asynqClient:   asynqClient,
		renderer:      renderer,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// loadSnapshot reads the latest fetch snapshot. Missing documents and
// store failures degrade to an empty snapshot.
func (h *Handlers) loadSnapshot(r *http.Request) models.FeedSnapshot {
	snapshot := models.FeedSnapshot{}
	if err := h.store.Get(r.Context(), h.snapshotDocID, &snapshot); err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			log.Printf("Error loading snapshot: %v", err)
		}
		return models.FeedSnapshot{}
	}
	return snapshot
}

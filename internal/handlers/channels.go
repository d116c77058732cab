package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"yt-curator/internal/registry"
	"yt-curator/pkg/tasks"
)

type addChannelRequest struct {
	URL      string `json:"url"`
	Name     string `json:"name,omitempty"`
	Feed     string `json:"feed,omitempty"`
	Category string `json:"category,omitempty"`
}

type removeChannelRequest struct {
	Handle   string `json:"handle"`
	Feed     string `json:"feed"`
	Category string `json:"category"`
}

// Channels dispatches on the action query parameter: list, add,
// remove. Each action is bound to its HTTP method; a mismatch is a
// 405.
func (h *Handlers) Channels(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("action") {
	case "", "list":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.listChannels(w, r)
	case "add":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.addChannel(w, r)
	case "remove":
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.removeChannel(w, r)
	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}

func (h *Handlers) listChannels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.registry.List(r.Context()))
}

// addChannel registers a channel and enqueues an immediate fetch so
// the new channel shows up without waiting for the next scheduled
// pass.
func (h *Handlers) addChannel(w http.ResponseWriter, r *http.Request) {
	var req addChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	added, err := h.registry.Add(r.Context(), req.URL, req.Name, req.Feed, req.Category)
	switch {
	case errors.Is(err, registry.ErrInvalidURL):
		writeError(w, http.StatusBadRequest, "could not parse channel url")
		return
	case errors.Is(err, registry.ErrDuplicateChannel):
		writeError(w, http.StatusBadRequest, "channel already exists")
		return
	case err != nil:
		log.Printf("Error adding channel: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save channel")
		return
	}

	task, err := tasks.NewFetchChannelTask(added.Handle, added.Name, added.Feed, added.Category)
	if err != nil {
		log.Printf("Error creating task: %v", err)
	} else if _, err := h.asynqClient.Enqueue(task); err != nil {
		log.Printf("Error enqueuing task: %v", err)
	}

	writeJSON(w, http.StatusOK, added)
}

func (h *Handlers) removeChannel(w http.ResponseWriter, r *http.Request) {
	var req removeChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Handle == "" || req.Feed == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "handle, feed and category are required")
		return
	}

	if err := h.registry.Remove(r.Context(), req.Handle, req.Feed, req.Category); err != nil {
		log.Printf("Error removing channel: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save channel")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

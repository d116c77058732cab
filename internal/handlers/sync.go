package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"yt-curator/internal/models"
)

// syncAction is the body of POST /sync. Only the fields the named
// action needs are read.
type syncAction struct {
	Action   string            `json:"action"`
	VideoID  string            `json:"videoId,omitempty"`
	PageType string            `json:"pageType,omitempty"`
	VideoIDs []string          `json:"videoIds,omitempty"`
	Videos   map[string]string `json:"videos,omitempty"`
}

// GetSync returns the caller's sync state. A feed query param narrows
// the unified document to that page type: myVideos keeps only that
// page's bucket and pendingNew only that page's entries. Watched
// markers are global by video id and always returned whole. Store
// failures degrade to the empty state, so this always answers 200.
func (h *Handlers) GetSync(w http.ResponseWriter, r *http.Request) {
	state := h.sync.GetState(r.Context())

	if feed := r.URL.Query().Get("feed"); feed != "" {
		narrowed := models.NewSyncState()
		narrowed.Watched = state.Watched
		if page, ok := state.MyVideos[feed]; ok {
			narrowed.MyVideos[feed] = page
		}
		for _, entry := range state.PendingNew {
			if entry.PageType == feed {
				narrowed.PendingNew = append(narrowed.PendingNew, entry)
			}
		}
		state = narrowed
	}

	writeJSON(w, http.StatusOK, state)
}

// PutSync persists a full client-submitted state, best effort. A
// fallback create answers {success:false, url} so the client can
// repoint itself at the replacement document.
func (h *Handlers) PutSync(w http.ResponseWriter, r *http.Request) {
	state := models.NewSyncState()
	if err := json.NewDecoder(r.Body).Decode(state); err != nil {
		writeError(w, http.StatusBadRequest, "invalid sync state body")
		return
	}
	state.Seed()
	writeJSON(w, http.StatusOK, h.sync.PutState(r.Context(), state))
}

// PostSync applies one server-side state transition. Each action is a
// single read-modify-write against the sync document.
func (h *Handlers) PostSync(w http.ResponseWriter, r *http.Request) {
	var req syncAction
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()
	switch req.Action {
	case "watch":
		if req.VideoID == "" {
			writeError(w, http.StatusBadRequest, "videoId is required")
			return
		}
		writeJSON(w, http.StatusOK, h.sync.MarkWatched(ctx, req.VideoID))
	case "unwatch":
		if req.VideoID == "" {
			writeError(w, http.StatusBadRequest, "videoId is required")
			return
		}
		writeJSON(w, http.StatusOK, h.sync.MarkUnwatched(ctx, req.VideoID))
	case "clearWatched":
		writeJSON(w, http.StatusOK, h.sync.ClearWatched(ctx))
	case "accept":
		if req.VideoID == "" {
			writeError(w, http.StatusBadRequest, "videoId is required")
			return
		}
		writeJSON(w, http.StatusOK, h.sync.AcceptPending(ctx, req.VideoID))
	case "refresh":
		if req.PageType == "" || len(req.VideoIDs) == 0 {
			writeError(w, http.StatusBadRequest, "pageType and videoIds are required")
			return
		}
		writeJSON(w, http.StatusOK, h.sync.MarkForRefresh(ctx, req.PageType, req.VideoIDs))
	case "seed":
		if req.PageType == "" {
			writeError(w, http.StatusBadRequest, "pageType is required")
			return
		}
		writeJSON(w, http.StatusOK, h.sync.SeedBaseline(ctx, req.PageType, req.Videos))
	default:
		log.Printf("Unknown sync action %q", req.Action)
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}

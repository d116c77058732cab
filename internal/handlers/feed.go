package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"yt-curator/internal/feed"
	"yt-curator/internal/models"
	"yt-curator/internal/render"
)

func knownFeed(name string) bool {
	for _, f := range models.Feeds {
		if f == name {
			return true
		}
	}
	return false
}

// GetRSSFeed renders one feed's latest snapshot as RSS.
func (h *Handlers) GetRSSFeed(w http.ResponseWriter, r *http.Request) {
	feedName := mux.Vars(r)["feed"]
	if !knownFeed(feedName) {
		http.Error(w, "Feed not found", http.StatusNotFound)
		return
	}

	snapshot := h.loadSnapshot(r)
	rss, err := feed.GenerateRSS(feedName, snapshot[feedName], r)
	if err != nil {
		log.Printf("Error generating RSS: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml")
	w.Write([]byte(rss))
}

// GetPage renders one feed's snapshot as HTML, annotated with the
// caller's watched and pending state.
func (h *Handlers) GetPage(w http.ResponseWriter, r *http.Request) {
	feedName := mux.Vars(r)["feed"]
	if !knownFeed(feedName) {
		http.Error(w, "Feed not found", http.StatusNotFound)
		return
	}

	snapshot := h.loadSnapshot(r)
	state := h.sync.GetState(r.Context())
	page := render.BuildPage(feedName, snapshot, state)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, page); err != nil {
		log.Printf("Error executing template: %v", err)
	}
}

// Package syncstate manages the per-user sync document: watched
// markers, the accepted video list, and the pending-new inbox.
//
// Every operation is a whole-document read-modify-write against the
// blob store. Two concurrent writers race last-writer-wins; the store
// offers no version token. Reads degrade to the empty state so a
// store outage never fails a caller.
package syncstate

import (
	"context"
	"errors"
	"log"
	"time"

	"yt-curator/internal/blob"
	"yt-curator/internal/models"
)

// Result reports the outcome of a best-effort state write. A fallback
// create yields Success=false with the new document's location, so the
// client can repoint itself.
type Result struct {
	Success     bool   `json:"success"`
	FallbackURL string `json:"url,omitempty"`
}

// Manager owns the sync document.
type Manager struct {
	store blob.Store
	docID string
	now   func() time.Time
}

func NewManager(store blob.Store, docID string) *Manager {
	return &Manager{store: store, docID: docID, now: time.Now}
}

// GetState never fails: a missing document or unreachable store
// degrades to the empty default state.
func (m *Manager) GetState(ctx context.Context) *models.SyncState {
	state := models.NewSyncState()
	if err := m.store.Get(ctx, m.docID, state); err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			log.Printf("syncstate: read degraded to empty state: %v", err)
		}
		return models.NewSyncState()
	}
	state.Seed()
	return state
}

// PutState writes the document best-effort. A failed update falls back
// to creating a new document once; total failure is reported, never
// raised.
func (m *Manager) PutState(ctx context.Context, state *models.SyncState) Result {
	if err := m.store.Put(ctx, m.docID, state); err != nil {
		log.Printf("syncstate: put failed, trying create: %v", err)
		location, cerr := m.store.Create(ctx, state)
		if cerr != nil {
			log.Printf("syncstate: fallback create failed: %v", cerr)
			return Result{}
		}
		return Result{Success: false, FallbackURL: location}
	}
	return Result{Success: true}
}

// SeedBaseline initializes myVideos for a page to exactly the videos
// currently rendered there, keyed by video id with the creator name as
// value. It only acts when the page has no baseline yet; this is the
// one-time first-visit transition, and it never generates pending
// entries.
func (m *Manager) SeedBaseline(ctx context.Context, pageType string, current map[string]string) Result {
	state := m.GetState(ctx)
	if len(state.MyVideos[pageType]) > 0 {
		return Result{Success: true}
	}

	page := state.Page(pageType)
	now := m.now().UnixMilli()
	for videoID, creator := range current {
		page[videoID] = models.VideoMeta{Added: now, Creator: creator}
	}
	return m.PutState(ctx, state)
}

// AcceptPending moves a pending entry into myVideos for its page type.
// This is the sole transition out of the pending inbox besides a
// snapshot no longer carrying the video. Unknown ids are a silent
// no-op.
func (m *Manager) AcceptPending(ctx context.Context, videoID string) Result {
	state := m.GetState(ctx)

	idx := -1
	for i, entry := range state.PendingNew {
		if entry.VideoID == videoID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Result{Success: true}
	}

	entry := state.PendingNew[idx]
	state.Page(entry.PageType)[videoID] = models.VideoMeta{
		Added:   m.now().UnixMilli(),
		Creator: entry.Creator,
	}
	state.PendingNew = append(state.PendingNew[:idx], state.PendingNew[idx+1:]...)
	return m.PutState(ctx, state)
}

// MarkWatched stamps a video as watched now.
func (m *Manager) MarkWatched(ctx context.Context, videoID string) Result {
	state := m.GetState(ctx)
	state.Watched[videoID] = m.now().UnixMilli()
	return m.PutState(ctx, state)
}

// MarkUnwatched clears a single watched marker.
func (m *Manager) MarkUnwatched(ctx context.Context, videoID string) Result {
	state := m.GetState(ctx)
	delete(state.Watched, videoID)
	return m.PutState(ctx, state)
}

// ClearWatched empties the whole watched map. Irreversible; the caller
// confirms with the user first.
func (m *Manager) ClearWatched(ctx context.Context) Result {
	state := m.GetState(ctx)
	state.Watched = map[string]int64{}
	return m.PutState(ctx, state)
}

// MarkForRefresh removes the given ids from myVideos for the page so
// the next fetch-and-reconcile pass treats them as new again. Watched
// markers stay.
func (m *Manager) MarkForRefresh(ctx context.Context, pageType string, videoIDs []string) Result {
	state := m.GetState(ctx)
	page := state.MyVideos[pageType]
	for _, id := range videoIDs {
		delete(page, id)
	}
	return m.PutState(ctx, state)
}

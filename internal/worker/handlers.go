package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"yt-curator/internal/blob"
	"yt-curator/internal/fetch"
	"yt-curator/internal/models"
	"yt-curator/internal/reconcile"
	"yt-curator/internal/registry"
	"yt-curator/internal/syncstate"
	"yt-curator/pkg/tasks"
)

// TaskHandler runs the fetch pipeline and folds results into the
// snapshot and sync documents.
type TaskHandler struct {
	registry      *registry.Registry
	pipeline      *fetch.Pipeline
	store         blob.Store
	snapshotDocID string
	sync          *syncstate.Manager
	saver         *syncstate.Saver
}

func NewTaskHandler(reg *registry.Registry, pipeline *fetch.Pipeline, store blob.Store, snapshotDocID string, sync *syncstate.Manager, saver *syncstate.Saver) *TaskHandler {
	return &TaskHandler{
		registry:      reg,
		pipeline:      pipeline,
		store:         store,
		snapshotDocID: snapshotDocID,
		sync:          sync,
		saver:         saver,
	}
}

// HandleFetchAllChannelsTask runs one full fetch pass: every channel in
// registry order, a fresh snapshot replacing the previous one, and a
// reconcile of the user's pending inbox. The sync write is flushed
// before returning so a scheduler-driven batch never leaves a queued
// write behind.
func (h *TaskHandler) HandleFetchAllChannelsTask(ctx context.Context, t *asynq.Task) error {
	log.Println("Fetching all channels...")

	channels := h.registry.List(ctx)
	snapshot, err := h.pipeline.FetchAll(ctx, channels)
	if err != nil {
		return fmt.Errorf("fetch all channels: %w", err)
	}

	if err := h.store.Put(ctx, h.snapshotDocID, snapshot); err != nil {
		// The snapshot is rebuilt on the next pass; reconcile can
		// still run against the in-memory copy.
		log.Printf("failed to persist snapshot: %v", err)
	}

	h.reconcileSnapshot(ctx, snapshot)

	if result := h.saver.Flush(ctx); !result.Success {
		log.Printf("sync state write not confirmed (fallback url %q)", result.FallbackURL)
	}

	log.Println("Finished fetching all channels.")
	return nil
}

// HandleFetchChannelTask fetches a single channel (enqueued right after
// the channel is added) and splices it into the existing snapshot.
// Sync writes ride the coalescing saver so a burst of adds produces one
// store write.
func (h *TaskHandler) HandleFetchChannelTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.FetchChannelTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}
	log.Printf("Fetching channel %s (%s)", p.Name, p.Handle)

	videos, err := h.pipeline.FetchChannel(ctx, models.Channel{Name: p.Name, Handle: p.Handle})
	if err != nil {
		return fmt.Errorf("fetch channel %s: %w", p.Handle, err)
	}

	entry := models.CreatorVideos{Creator: p.Name, Channel: p.Handle, Videos: videos}
	snapshot := h.loadSnapshot(ctx)
	spliceSnapshot(snapshot, p.Feed, p.Category, entry)

	if err := h.store.Put(ctx, h.snapshotDocID, snapshot); err != nil {
		log.Printf("failed to persist snapshot: %v", err)
	}

	h.reconcileSnapshot(ctx, models.FeedSnapshot{
		p.Feed: {p.Category: []models.CreatorVideos{entry}},
	})
	return nil
}

// reconcileSnapshot appends newly discovered videos to the user's
// pending inbox. The write touches pendingNew only, which keeps the
// unavoidable last-writer-wins race with client saves additive.
func (h *TaskHandler) reconcileSnapshot(ctx context.Context, snapshot models.FeedSnapshot) {
	state := h.sync.GetState(ctx)
	added := reconcile.Reconcile(snapshot, state, time.Now())
	if added == 0 {
		log.Println("No new videos found")
		return
	}

	log.Printf("Queued %d new videos as pending", added)
	h.saver.Schedule(state)
}

func (h *TaskHandler) loadSnapshot(ctx context.Context) models.FeedSnapshot {
	snapshot := models.FeedSnapshot{}
	if err := h.store.Get(ctx, h.snapshotDocID, &snapshot); err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			log.Printf("failed to load snapshot, starting empty: %v", err)
		}
		return models.FeedSnapshot{}
	}
	return snapshot
}

// spliceSnapshot replaces (or appends) a creator's entry in its
// feed/category bucket.
func spliceSnapshot(snapshot models.FeedSnapshot, feed, category string, entry models.CreatorVideos) {
	if snapshot[feed] == nil {
		snapshot[feed] = map[string][]models.CreatorVideos{}
	}
	bucket := snapshot[feed][category]
	for i, existing := range bucket {
		if existing.Channel == entry.Channel {
			bucket[i] = entry
			return
		}
	}
	snapshot[feed][category] = append(bucket, entry)
}

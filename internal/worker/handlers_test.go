package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"yt-curator/internal/fetch"
	"yt-curator/internal/models"
	"yt-curator/internal/registry"
	"yt-curator/internal/syncstate"
	"yt-curator/internal/test"
	"yt-curator/pkg/tasks"
)

const (
	channelsDocID = "channels-doc"
	snapshotDocID = "snapshot-doc"
	syncDocID     = "sync-doc"
)

// fakeSource returns one video per handle, switchable between passes.
type fakeSource struct {
	videos map[string]fetch.RawVideo
	fail   map[string]bool
}

func (f *fakeSource) FetchLatest(ctx context.Context, handle string, limit int) ([]fetch.RawVideo, error) {
	if f.fail[handle] {
		return nil, errors.New("page timed out")
	}
	raw, ok := f.videos[handle]
	if !ok {
		return nil, nil
	}
	return []fetch.RawVideo{raw}, nil
}

func newHarness(source fetch.VideoSource) (*TaskHandler, *test.MemoryBlob, *syncstate.Manager) {
	store := test.NewMemoryBlob()
	reg := registry.New(store, channelsDocID)
	pipeline := fetch.NewPipeline(source, 1, time.Millisecond)
	manager := syncstate.NewManager(store, syncDocID)
	saver := syncstate.NewSaver(manager, time.Millisecond)
	return NewTaskHandler(reg, pipeline, store, snapshotDocID, manager, saver), store, manager
}

func rawVideo(id string) fetch.RawVideo {
	return fetch.RawVideo{
		Title:   "Video " + id,
		URL:     "https://www.youtube.com/watch?v=" + id,
		DateStr: "2 hours ago",
	}
}

// Full lifecycle: first pass with no baseline queues nothing, baseline
// seeding takes over, a later upload lands in the pending inbox exactly
// once, and accepting it moves it into myVideos for good.
func TestFetchAllLifecycle(t *testing.T) {
	source := &fakeSource{videos: map[string]fetch.RawVideo{"@mreflow": rawVideo("v1")}}
	handler, store, manager := newHarness(source)
	ctx := context.Background()

	reg := registry.New(store, channelsDocID)
	_, err := reg.Add(ctx, "@mreflow", "Matt Wolfe", models.FeedResearch, "AI and Tech")
	assert.NoError(t, err)

	task, err := tasks.NewFetchAllChannelsTask()
	assert.NoError(t, err)

	// First pass: no baseline, so the first-visit guard holds.
	assert.NoError(t, handler.HandleFetchAllChannelsTask(ctx, task))

	var snapshot models.FeedSnapshot
	assert.NoError(t, store.Get(ctx, snapshotDocID, &snapshot))
	entries := snapshot[models.FeedResearch]["AI and Tech"]
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "v1", entries[0].Videos[0].VideoID)
	}
	assert.Empty(t, manager.GetState(ctx).PendingNew)

	// Baseline seeding is the only first-visit path into myVideos.
	manager.SeedBaseline(ctx, models.FeedResearch, map[string]string{"v1": "Matt Wolfe"})

	// Second pass with a different upload queues exactly one entry.
	source.videos["@mreflow"] = rawVideo("v2")
	assert.NoError(t, handler.HandleFetchAllChannelsTask(ctx, task))

	state := manager.GetState(ctx)
	if assert.Len(t, state.PendingNew, 1) {
		assert.Equal(t, "v2", state.PendingNew[0].VideoID)
		assert.Equal(t, models.FeedResearch, state.PendingNew[0].PageType)
	}

	// Re-running the same pass does not duplicate the entry.
	assert.NoError(t, handler.HandleFetchAllChannelsTask(ctx, task))
	assert.Len(t, manager.GetState(ctx).PendingNew, 1)

	// Accepting moves it to myVideos and keeps it out of pending on
	// later passes.
	manager.AcceptPending(ctx, "v2")
	state = manager.GetState(ctx)
	assert.Empty(t, state.PendingNew)
	assert.Contains(t, state.MyVideos[models.FeedResearch], "v2")

	assert.NoError(t, handler.HandleFetchAllChannelsTask(ctx, task))
	assert.Empty(t, manager.GetState(ctx).PendingNew)
}

func TestMarkForRefreshRequeues(t *testing.T) {
	source := &fakeSource{videos: map[string]fetch.RawVideo{"@mreflow": rawVideo("v1")}}
	handler, store, manager := newHarness(source)
	ctx := context.Background()

	reg := registry.New(store, channelsDocID)
	_, err := reg.Add(ctx, "@mreflow", "Matt Wolfe", models.FeedResearch, "AI and Tech")
	assert.NoError(t, err)

	manager.SeedBaseline(ctx, models.FeedResearch, map[string]string{
		"v1":    "Matt Wolfe",
		"other": "Somebody",
	})

	// v1 is known, so a pass queues nothing.
	task, _ := tasks.NewFetchAllChannelsTask()
	assert.NoError(t, handler.HandleFetchAllChannelsTask(ctx, task))
	assert.Empty(t, manager.GetState(ctx).PendingNew)

	// After a refresh, the same video comes back as pending once.
	manager.MarkForRefresh(ctx, models.FeedResearch, []string{"v1"})
	assert.NoError(t, handler.HandleFetchAllChannelsTask(ctx, task))

	state := manager.GetState(ctx)
	if assert.Len(t, state.PendingNew, 1) {
		assert.Equal(t, "v1", state.PendingNew[0].VideoID)
	}

	assert.NoError(t, handler.HandleFetchAllChannelsTask(ctx, task))
	assert.Len(t, manager.GetState(ctx).PendingNew, 1)
}

func TestFetchChannelTaskSplices(t *testing.T) {
	source := &fakeSource{videos: map[string]fetch.RawVideo{
		"@mreflow": rawVideo("v1"),
		"@new":     rawVideo("n1"),
	}}
	handler, store, manager := newHarness(source)
	ctx := context.Background()

	// Existing snapshot with one creator.
	assert.NoError(t, store.Put(ctx, snapshotDocID, models.FeedSnapshot{
		models.FeedResearch: {"AI and Tech": []models.CreatorVideos{
			{Creator: "Matt Wolfe", Channel: "@mreflow", Videos: []models.Video{{VideoID: "v1"}}},
		}},
	}))
	manager.SeedBaseline(ctx, models.FeedResearch, map[string]string{"v1": "Matt Wolfe"})

	task, err := tasks.NewFetchChannelTask("@new", "Newcomer", models.FeedResearch, "AI and Tech")
	assert.NoError(t, err)
	assert.NoError(t, handler.HandleFetchChannelTask(ctx, task))

	var snapshot models.FeedSnapshot
	assert.NoError(t, store.Get(ctx, snapshotDocID, &snapshot))
	entries := snapshot[models.FeedResearch]["AI and Tech"]
	assert.Len(t, entries, 2)

	// The new channel's video lands in pending (baseline established)
	// once the coalesced write drains.
	assert.Eventually(t, func() bool {
		return len(manager.GetState(ctx).PendingNew) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "n1", manager.GetState(ctx).PendingNew[0].VideoID)
}

func TestFetchAllIsolatesChannelFailure(t *testing.T) {
	source := &fakeSource{
		videos: map[string]fetch.RawVideo{"@ok": rawVideo("ok1")},
		fail:   map[string]bool{"@broken": true},
	}
	handler, store, _ := newHarness(source)
	ctx := context.Background()

	reg := registry.New(store, channelsDocID)
	_, err := reg.Add(ctx, "@ok", "OK", models.FeedNews, "News")
	assert.NoError(t, err)
	_, err = reg.Add(ctx, "@broken", "Broken", models.FeedNews, "News")
	assert.NoError(t, err)

	task, _ := tasks.NewFetchAllChannelsTask()
	assert.NoError(t, handler.HandleFetchAllChannelsTask(ctx, task))

	var snapshot models.FeedSnapshot
	assert.NoError(t, store.Get(ctx, snapshotDocID, &snapshot))
	entries := snapshot[models.FeedNews]["News"]
	if assert.Len(t, entries, 2) {
		assert.Len(t, entries[0].Videos, 1)
		assert.Empty(t, entries[1].Videos)
	}
}

// Package reconcile merges a fresh fetch snapshot into a user's sync
// state, queueing videos the user has not seen into the pending-new
// inbox.
package reconcile

import (
	"time"

	"yt-curator/internal/models"
)

// Reconcile walks every video in the snapshot and appends a pending
// entry for each one that is neither in myVideos nor already pending
// for its page type. Pages with an empty myVideos baseline are skipped
// entirely: a brand-new user gets their baseline seeded instead of a
// flood of "new" notifications.
//
// The function is pure over its inputs: it mutates state in memory
// only and returns the number of entries appended. All store reads and
// writes belong to the caller.
func Reconcile(snapshot models.FeedSnapshot, state *models.SyncState, now time.Time) int {
	state.Seed()

	pending := make(map[string]bool, len(state.PendingNew))
	for _, entry := range state.PendingNew {
		pending[entry.VideoID] = true
	}

	added := 0
	for pageType, categories := range snapshot {
		known := state.MyVideos[pageType]
		if len(known) == 0 {
			continue
		}
		for _, creators := range categories {
			for _, creator := range creators {
				for _, video := range creator.Videos {
					if video.VideoID == "" {
						continue
					}
					if _, ok := known[video.VideoID]; ok {
						continue
					}
					if pending[video.VideoID] {
						continue
					}

					state.PendingNew = append(state.PendingNew, models.PendingEntry{
						VideoID:   video.VideoID,
						Title:     video.Title,
						Creator:   creator.Creator,
						Channel:   creator.Channel,
						PageType:  pageType,
						Thumbnail: video.Thumbnail,
						DateStr:   video.DateStr,
						Duration:  video.Duration,
						AddedAt:   now.UnixMilli(),
					})
					pending[video.VideoID] = true
					added++
				}
			}
		}
	}
	return added
}

package fetch

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"
	"yt-curator/internal/models"
)

// DefaultDelay is the pause between channel fetches. The scraped
// source is rate sensitive; one sequential request every 1.5s keeps a
// low profile.
const DefaultDelay = 1500 * time.Millisecond

// Pipeline fetches the latest uploads for every registered channel,
// one channel at a time, and assembles a feed snapshot.
type Pipeline struct {
	source VideoSource
	limit  int
	pace   *rate.Limiter
}

// NewPipeline creates a pipeline fetching up to limit videos per
// channel with the given inter-channel delay.
func NewPipeline(source VideoSource, limit int, delay time.Duration) *Pipeline {
	if limit <= 0 {
		limit = 1
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Pipeline{
		source: source,
		limit:  limit,
		pace:   rate.NewLimiter(rate.Every(delay), 1),
	}
}

// FetchAll walks the channel set and fetches each channel's latest
// uploads. A per-channel failure yields an entry with zero videos and
// a log line; it never aborts the pass. The only returned error is
// context cancellation.
func (p *Pipeline) FetchAll(ctx context.Context, channels models.ChannelSet) (models.FeedSnapshot, error) {
	snapshot := models.FeedSnapshot{}
	for feed, categories := range channels.Channels {
		snapshot[feed] = map[string][]models.CreatorVideos{}
		for category, chans := range categories {
			entries := make([]models.CreatorVideos, 0, len(chans))
			for _, ch := range chans {
				videos, err := p.FetchChannel(ctx, ch)
				if err != nil {
					return snapshot, err
				}
				entries = append(entries, models.CreatorVideos{
					Creator: ch.Name,
					Channel: ch.Handle,
					Videos:  videos,
				})
			}
			snapshot[feed][category] = entries
		}
	}
	return snapshot, nil
}

// FetchChannel fetches and normalizes one channel's uploads, honoring
// the pipeline pacing. Source failures degrade to zero videos.
func (p *Pipeline) FetchChannel(ctx context.Context, ch models.Channel) ([]models.Video, error) {
	if err := p.pace.Wait(ctx); err != nil {
		return nil, err
	}

	raws, err := p.source.FetchLatest(ctx, ch.Handle, p.limit)
	if err != nil {
		log.Printf("fetch: %s (%s): %v", ch.Name, ch.Handle, err)
		return []models.Video{}, nil
	}

	videos := make([]models.Video, 0, len(raws))
	for _, raw := range raws {
		videos = append(videos, Normalize(raw))
	}
	return videos, nil
}

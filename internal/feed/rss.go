// Package feed renders a feed's current snapshot as an RSS document,
// so podcast clients and readers can follow the curated list.
package feed

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/eduncan911/podcast"
	"yt-curator/internal/models"
)

func getBaseURL(r *http.Request) string {
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		return baseURL
	}

	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "https"
		if r.Header.Get("X-Forwarded-Proto") != "" {
			scheme = r.Header.Get("X-Forwarded-Proto")
		}
	}

	return fmt.Sprintf("%s://%s", scheme, r.Host)
}

// GenerateRSS renders one feed's categories as an RSS channel. Items
// link to the YouTube watch pages; entries without a parsed video id
// are skipped.
func GenerateRSS(feedName string, categories map[string][]models.CreatorVideos, r *http.Request) (string, error) {
	baseURL := getBaseURL(r)

	now := time.Now()
	p := podcast.New(
		fmt.Sprintf("Curated %s feed", feedName),
		fmt.Sprintf("%s/rss/%s", baseURL, feedName),
		fmt.Sprintf("Latest uploads from followed %s channels.", feedName),
		&now, &now,
	)

	for category, creators := range categories {
		for _, creator := range creators {
			for _, video := range creator.Videos {
				if video.VideoID == "" {
					continue
				}
				item := podcast.Item{
					Title:       fmt.Sprintf("%s: %s", creator.Creator, video.Title),
					Description: fmt.Sprintf("%s / %s. %s, %s", category, creator.Creator, video.DateStr, video.Duration),
					Link:        video.URL,
				}
				item.AddImage(video.Thumbnail)
				if _, err := p.AddItem(item); err != nil {
					return "", err
				}
			}
		}
	}

	return p.String(), nil
}

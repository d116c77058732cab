package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

var execCommandContext = exec.CommandContext

// YtDlpSource lists channel uploads with yt-dlp's flat playlist mode.
// yt-dlp does its own page scraping, so no browser is needed here.
type YtDlpSource struct {
	now func() time.Time
}

type ytDlpEntry struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Duration   float64 `json:"duration"`
	ViewCount  int64   `json:"view_count"`
	Timestamp  int64   `json:"timestamp"`
	UploadDate string  `json:"upload_date"`
}

// publishedAt resolves the upload time from whichever field yt-dlp
// emitted: the epoch timestamp when known, else the YYYYMMDD date.
func (e ytDlpEntry) publishedAt() *time.Time {
	if e.Timestamp > 0 {
		t := time.Unix(e.Timestamp, 0)
		return &t
	}
	if t, err := time.Parse("20060102", e.UploadDate); err == nil {
		return &t
	}
	return nil
}

func (s *YtDlpSource) FetchLatest(ctx context.Context, handle string, limit int) ([]RawVideo, error) {
	now := time.Now
	if s.now != nil {
		now = s.now
	}

	cmd := execCommandContext(ctx, "yt-dlp",
		"--flat-playlist",
		"-j",
		"--playlist-end", strconv.Itoa(limit),
		fmt.Sprintf("https://www.youtube.com/%s/videos", handle),
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("yt-dlp %s: %w: %s", handle, err, strings.TrimSpace(string(output)))
	}

	var videos []RawVideo
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line == "" {
			continue
		}
		var entry ytDlpEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			// yt-dlp mixes warnings into its output stream.
			continue
		}
		if entry.ID == "" {
			continue
		}

		url := entry.URL
		if url == "" {
			url = "https://www.youtube.com/watch?v=" + entry.ID
		}
		raw := RawVideo{
			Title:    entry.Title,
			URL:      url,
			Duration: formatDuration(entry.Duration),
			DateStr:  relativeDateText(now(), entry.publishedAt()),
		}
		if entry.ViewCount > 0 {
			raw.Views = fmt.Sprintf("%d views", entry.ViewCount)
		}
		videos = append(videos, raw)
		if len(videos) >= limit {
			break
		}
	}
	return videos, nil
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	total := int(seconds)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

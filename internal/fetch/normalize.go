package fetch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"yt-curator/internal/models"
)

var videoIDRules = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([^&]+)`),
	regexp.MustCompile(`/watch/([^?&]+)`),
}

// ExtractVideoID pulls the YouTube video id out of a watch URL.
func ExtractVideoID(url string) string {
	for _, rule := range videoIDRules {
		if m := rule.FindStringSubmatch(url); m != nil {
			return m[1]
		}
	}
	return ""
}

func thumbnailURL(videoID string) string {
	if videoID == "" {
		return ""
	}
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", videoID)
}

// Normalize converts a raw source record into a canonical Video.
func Normalize(raw RawVideo) models.Video {
	videoID := ExtractVideoID(raw.URL)
	return models.Video{
		VideoID:   videoID,
		Title:     raw.Title,
		URL:       raw.URL,
		Thumbnail: thumbnailURL(videoID),
		Duration:  raw.Duration,
		Views:     raw.Views,
		DateStr:   raw.DateStr,
		IsNew:     IsRecent(raw.DateStr),
	}
}

// relativeDateText renders a publish time the way the watch page would
// ("3 hours ago"), so freshness classification works identically for
// every source.
func relativeDateText(now time.Time, published *time.Time) string {
	if published == nil {
		return ""
	}
	age := now.Sub(*published)
	switch {
	case age < 0:
		return ""
	case age < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(age.Hours()))
	case age < 14*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(age.Hours()/24))
	case age < 60*24*time.Hour:
		return fmt.Sprintf("%d weeks ago", int(age.Hours()/(24*7)))
	case age < 365*24*time.Hour:
		return fmt.Sprintf("%d months ago", int(age.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%d years ago", int(age.Hours()/(24*365)))
	}
}

var daysAgoRule = regexp.MustCompile(`(\d+)\s*day`)

// IsRecent reports whether a relative-date text like "3 hours ago" or
// "2 days ago" denotes an upload within the last 7 days. Unparseable
// text, weeks, months and years all count as not recent.
func IsRecent(dateStr string) bool {
	if dateStr == "" {
		return false
	}
	lower := strings.ToLower(dateStr)
	if strings.Contains(lower, "hour") || strings.Contains(lower, "minute") || strings.Contains(lower, "second") {
		return true
	}
	if strings.Contains(lower, "day") {
		if m := daysAgoRule.FindStringSubmatch(lower); m != nil {
			if days, err := strconv.Atoi(m[1]); err == nil && days <= 7 {
				return true
			}
		}
	}
	return false
}

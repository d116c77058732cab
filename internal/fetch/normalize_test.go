package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRecent(t *testing.T) {
	tests := []struct {
		dateStr string
		want    bool
	}{
		{"3 hours ago", true},
		{"45 minutes ago", true},
		{"30 seconds ago", true},
		{"1 day ago", true},
		{"2 days ago", true},
		{"7 days ago", true},
		{"8 days ago", false},
		{"9 days ago", false},
		{"3 weeks ago", false},
		{"2 months ago", false},
		{"1 year ago", false},
		{"", false},
		{"Streamed live", false},
	}

	for _, tt := range tests {
		t.Run(tt.dateStr, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRecent(tt.dateStr))
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	assert.Equal(t, "abc123", ExtractVideoID("https://www.youtube.com/watch?v=abc123"))
	assert.Equal(t, "abc123", ExtractVideoID("https://www.youtube.com/watch?v=abc123&list=PL9"))
	assert.Equal(t, "xyz", ExtractVideoID("https://www.youtube.com/watch/xyz?feature=share"))
	assert.Equal(t, "", ExtractVideoID("https://www.youtube.com/@somebody"))
	assert.Equal(t, "", ExtractVideoID(""))
}

func TestNormalize(t *testing.T) {
	video := Normalize(RawVideo{
		Title:    "A fresh upload",
		URL:      "https://www.youtube.com/watch?v=fresh1",
		Views:    "12K views",
		DateStr:  "2 hours ago",
		Duration: "12:34",
	})

	assert.Equal(t, "fresh1", video.VideoID)
	assert.Equal(t, "https://i.ytimg.com/vi/fresh1/hqdefault.jpg", video.Thumbnail)
	assert.True(t, video.IsNew)

	stale := Normalize(RawVideo{
		Title:   "An old upload",
		URL:     "https://www.youtube.com/watch?v=old1",
		DateStr: "3 weeks ago",
	})
	assert.False(t, stale.IsNew)
}

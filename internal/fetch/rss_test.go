package fetch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFeedURLFor(t *testing.T) {
	assert.Equal(t,
		"https://www.youtube.com/feeds/videos.xml?channel_id=UCabc",
		feedURLFor("@UCabc"))
	assert.Equal(t,
		"https://www.youtube.com/feeds/videos.xml?user=mreflow",
		feedURLFor("@mreflow"))
}

func TestRelativeDateText(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	at := func(d time.Duration) *time.Time {
		t := now.Add(-d)
		return &t
	}

	assert.Equal(t, "30 minutes ago", relativeDateText(now, at(30*time.Minute)))
	assert.Equal(t, "3 hours ago", relativeDateText(now, at(3*time.Hour)))
	assert.Equal(t, "2 days ago", relativeDateText(now, at(48*time.Hour)))
	assert.Equal(t, "9 days ago", relativeDateText(now, at(9*24*time.Hour)))
	assert.Equal(t, "3 weeks ago", relativeDateText(now, at(21*24*time.Hour)))
	assert.Equal(t, "", relativeDateText(now, nil))

	// The rendered text must agree with the freshness rule.
	assert.True(t, IsRecent(relativeDateText(now, at(3*time.Hour))))
	assert.True(t, IsRecent(relativeDateText(now, at(2*24*time.Hour))))
	assert.False(t, IsRecent(relativeDateText(now, at(9*24*time.Hour))))
}

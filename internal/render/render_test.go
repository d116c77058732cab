package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"yt-curator/internal/models"
)

func snapshotFixture() models.FeedSnapshot {
	return models.FeedSnapshot{
		models.FeedResearch: {"AI and Tech": []models.CreatorVideos{{
			Creator: "Matt Wolfe",
			Channel: "@mreflow",
			Videos: []models.Video{
				{VideoID: "w1", Title: "Old upload", URL: "https://www.youtube.com/watch?v=w1"},
				{VideoID: "n1", Title: "Fresh upload", URL: "https://www.youtube.com/watch?v=n1", IsNew: true},
			},
		}}},
	}
}

func TestBuildPageAnnotations(t *testing.T) {
	state := models.NewSyncState()
	state.Watched["w1"] = 123
	state.Page(models.FeedResearch)["w1"] = models.VideoMeta{Added: 123, Creator: "Matt Wolfe"}
	state.PendingNew = []models.PendingEntry{
		{VideoID: "p1", Title: "Pending one", Creator: "Matt Wolfe", PageType: models.FeedResearch},
		{VideoID: "p2", Title: "Other page", Creator: "X", PageType: models.FeedNews},
	}

	page := BuildPage(models.FeedResearch, snapshotFixture(), state)

	assert.Equal(t, models.FeedResearch, page.Feed)
	if assert.Len(t, page.Pending, 1) {
		assert.Equal(t, "p1", page.Pending[0].VideoID)
	}

	videos := page.Categories["AI and Tech"][0].Videos
	assert.True(t, videos[0].Watched)
	assert.True(t, videos[0].Known)
	assert.False(t, videos[1].Watched)
	assert.False(t, videos[1].Known)
}

func TestRenderMarkup(t *testing.T) {
	state := models.NewSyncState()
	state.Watched["w1"] = 123
	state.PendingNew = []models.PendingEntry{
		{VideoID: "p1", Title: "Pending one", Creator: "Matt Wolfe", PageType: models.FeedResearch},
	}

	page := BuildPage(models.FeedResearch, snapshotFixture(), state)

	var buf bytes.Buffer
	assert.NoError(t, New().Render(&buf, page))

	html := buf.String()
	assert.Contains(t, html, `class="watched"`)
	assert.Contains(t, html, "NEW")
	assert.Contains(t, html, "Pending one")
	assert.Contains(t, html, "watch?v=p1")
}

func TestBuildPageEmptySnapshot(t *testing.T) {
	page := BuildPage(models.FeedNews, models.FeedSnapshot{}, models.NewSyncState())
	assert.Empty(t, page.Categories)
	assert.Empty(t, page.Pending)
}

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"yt-curator/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		feed     string
		category string
	}{
		{"CNN News", "https://youtube.com/@CNN", models.FeedNews, "News"},
		{"Sailing Adventures", "https://youtube.com/@sailaway", models.FeedEntertainment, "Sailing"},
		{"Nutrition Made Simple!", "https://youtube.com/@NutritionMadeSimple", models.FeedResearch, "Health"},
		{"Ben Felix", "https://youtube.com/@BenFelixCSI", models.FeedResearch, "News and Finance"},
		{"Matt Wolfe", "https://youtube.com/@mreflow", models.FeedResearch, "AI and Tech"},
		{"Random Channel", "https://youtube.com/@somebody", models.FeedResearch, "General"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feed, category := Classify(tt.name, tt.url)
			assert.Equal(t, tt.feed, feed)
			assert.Equal(t, tt.category, category)
		})
	}
}

// Rule order matters: a sailing channel name also contains "ai", and
// must hit the sailing rule first.
func TestClassifyOrder(t *testing.T) {
	feed, category := Classify("Sailing AI Lab", "https://youtube.com/@x")
	assert.Equal(t, models.FeedEntertainment, feed)
	assert.Equal(t, "Sailing", category)
}

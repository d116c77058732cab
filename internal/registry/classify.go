package registry

import (
	"strings"

	"yt-curator/internal/models"
)

// classifyRule maps keyword hits to a feed/category pair. Rules are
// evaluated in order; the first hit wins.
type classifyRule struct {
	keywords []string
	feed     string
	category string
}

var classifyRules = []classifyRule{
	{
		keywords: []string{"news", "cnn", "bbc", "global", "ctv", "politics", "brian tyler cohen", "kellerman"},
		feed:     models.FeedNews,
		category: "News",
	},
	{
		keywords: []string{"sail", "boat", "yacht", "dock", "parlay", "cruising"},
		feed:     models.FeedEntertainment,
		category: "Sailing",
	},
	{
		keywords: []string{"doctor", "health", "nutrition", "fitness", "medical", "norwitz"},
		feed:     models.FeedResearch,
		category: "Health",
	},
	{
		keywords: []string{"finance", "money", "invest", "mortgage", "felix", "stock"},
		feed:     models.FeedResearch,
		category: "News and Finance",
	},
	{
		keywords: []string{"ai", "tech", "code", "wolfe", "berman", "artificial"},
		feed:     models.FeedResearch,
		category: "AI and Tech",
	},
}

// Classify guesses a feed and category for a channel from its name and
// URL using case-insensitive substring matching.
func Classify(name, url string) (feed, category string) {
	haystack := strings.ToLower(name) + " " + strings.ToLower(url)
	for _, rule := range classifyRules {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.feed, rule.category
			}
		}
	}
	return models.FeedResearch, "General"
}

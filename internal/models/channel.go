package models

// Known feeds. Every channel lives in exactly one of them.
const (
	FeedResearch      = "research"
	FeedEntertainment = "entertainment"
	FeedNews          = "news"
)

// Feeds lists the known feeds in display order.
var Feeds = []string{FeedResearch, FeedEntertainment, FeedNews}

// Channel is one followed YouTube channel as stored in the registry
// document. Feed and category are positional (the map keys above it),
// not fields of the record.
type Channel struct {
	Name    string `json:"name"`
	Handle  string `json:"channel"`
	AddedAt int64  `json:"addedAt,omitempty"`
}

// ChannelSet is the registry document: feed -> category -> channels.
type ChannelSet struct {
	Channels map[string]map[string][]Channel `json:"channels"`
}

// NewChannelSet returns a set with the known feeds pre-seeded empty.
func NewChannelSet() ChannelSet {
	set := ChannelSet{Channels: make(map[string]map[string][]Channel, len(Feeds))}
	for _, feed := range Feeds {
		set.Channels[feed] = map[string][]Channel{}
	}
	return set
}

// Seed fills in any missing feed buckets after a document load.
func (s *ChannelSet) Seed() {
	if s.Channels == nil {
		s.Channels = map[string]map[string][]Channel{}
	}
	for _, feed := range Feeds {
		if s.Channels[feed] == nil {
			s.Channels[feed] = map[string][]Channel{}
		}
	}
}

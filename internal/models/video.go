package models

// Video is one normalized upload produced by a fetch pass. Videos are
// immutable once fetched; they live only inside snapshots and pending
// entries, never as standalone documents.
type Video struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Duration  string `json:"duration"`
	Views     string `json:"views"`
	DateStr   string `json:"dateStr"`
	IsNew     bool   `json:"isNew"`
}

// CreatorVideos pairs a creator with their latest uploads.
type CreatorVideos struct {
	Creator string  `json:"creator"`
	Channel string  `json:"channel"`
	Videos  []Video `json:"videos"`
}

// FeedSnapshot is the output of one full fetch pass:
// feed -> category -> creators. A new snapshot replaces the previous
// one wholesale; there is no incremental merge at this layer.
type FeedSnapshot map[string]map[string][]CreatorVideos

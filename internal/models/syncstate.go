package models

// VideoMeta records when a video entered myVideos and which creator it
// came from.
type VideoMeta struct {
	Added   int64  `json:"added"`
	Creator string `json:"creator"`
}

// PendingEntry is a newly discovered video waiting for the user to
// accept it into their list.
type PendingEntry struct {
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Creator   string `json:"creator"`
	Channel   string `json:"channel"`
	PageType  string `json:"pageType"`
	Thumbnail string `json:"thumbnail"`
	DateStr   string `json:"dateStr"`
	Duration  string `json:"duration"`
	AddedAt   int64  `json:"addedAt"`
}

// SyncState is the per-user document synced across devices. Watched
// markers are keyed by video id, myVideos by page type then video id.
// A video id must never appear in both pendingNew and myVideos for the
// same page type: accepting a pending entry is the only transition
// between them.
type SyncState struct {
	Watched    map[string]int64                `json:"watched"`
	MyVideos   map[string]map[string]VideoMeta `json:"myVideos"`
	PendingNew []PendingEntry                  `json:"pendingNew"`
}

// NewSyncState returns the empty default state.
func NewSyncState() *SyncState {
	return &SyncState{
		Watched:    map[string]int64{},
		MyVideos:   map[string]map[string]VideoMeta{},
		PendingNew: []PendingEntry{},
	}
}

// Seed fills in nil maps after a document load.
func (s *SyncState) Seed() {
	if s.Watched == nil {
		s.Watched = map[string]int64{}
	}
	if s.MyVideos == nil {
		s.MyVideos = map[string]map[string]VideoMeta{}
	}
	if s.PendingNew == nil {
		s.PendingNew = []PendingEntry{}
	}
}

// Page returns the myVideos bucket for a page type, creating it if
// needed.
func (s *SyncState) Page(pageType string) map[string]VideoMeta {
	if s.MyVideos[pageType] == nil {
		s.MyVideos[pageType] = map[string]VideoMeta{}
	}
	return s.MyVideos[pageType]
}

// Package fetch turns registered channels into a feed snapshot by
// asking a video source for each channel's latest uploads.
package fetch

import "context"

// RawVideo is what a VideoSource yields before normalization. The
// views/date fields are display text as the source shows them, not
// parsed values.
type RawVideo struct {
	Title    string
	URL      string
	Views    string
	DateStr  string
	Duration string
}

// VideoSource yields the latest uploads for a channel handle. A call
// may fail per channel; the pipeline isolates such failures.
type VideoSource interface {
	FetchLatest(ctx context.Context, handle string, limit int) ([]RawVideo, error)
}

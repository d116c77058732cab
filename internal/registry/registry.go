// Package registry stores the set of followed channels, grouped by
// feed and category, in a single remote document.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"yt-curator/internal/blob"
	"yt-curator/internal/models"
)

var (
	// ErrInvalidURL means no URL rule matched the input.
	ErrInvalidURL = errors.New("registry: could not parse channel url")
	// ErrDuplicateChannel means the (feed, category, handle) triple
	// already exists.
	ErrDuplicateChannel = errors.New("registry: channel already exists")
)

// AddedChannel is the caller-facing result of Add, with the resolved
// feed and category attached.
type AddedChannel struct {
	Name     string `json:"name"`
	Handle   string `json:"handle"`
	Feed     string `json:"feed"`
	Category string `json:"category"`
}

// Registry manages the channel document.
type Registry struct {
	store blob.Store
	docID string
}

func New(store blob.Store, docID string) *Registry {
	return &Registry{store: store, docID: docID}
}

// List returns the full channel set. Store failures and missing
// documents degrade to an empty set with the known feeds seeded; List
// never fails the caller.
func (r *Registry) List(ctx context.Context) models.ChannelSet {
	var set models.ChannelSet
	if err := r.store.Get(ctx, r.docID, &set); err != nil {
		if !errors.Is(err, blob.ErrNotFound) {
			log.Printf("registry: list degraded to empty set: %v", err)
		}
		return models.NewChannelSet()
	}
	set.Seed()
	return set
}

// Add parses the URL into a handle, resolves feed and category
// (auto-classifying when the caller left them empty), and persists the
// updated document. The read-modify-write is not atomic; a concurrent
// Add can be lost.
func (r *Registry) Add(ctx context.Context, url, name, feed, category string) (AddedChannel, error) {
	handle, ok := ParseChannelURL(url)
	if !ok {
		return AddedChannel{}, ErrInvalidURL
	}

	displayName := name
	if displayName == "" {
		displayName = strings.TrimPrefix(handle, "@")
	}

	detectedFeed, detectedCategory := Classify(firstNonEmpty(name, handle), url)
	if feed == "" {
		feed = detectedFeed
	}
	if category == "" {
		category = detectedCategory
	}

	set := r.List(ctx)
	if set.Channels[feed] == nil {
		set.Channels[feed] = map[string][]models.Channel{}
	}
	for _, ch := range set.Channels[feed][category] {
		if ch.Handle == handle {
			return AddedChannel{}, ErrDuplicateChannel
		}
	}

	set.Channels[feed][category] = append(set.Channels[feed][category], models.Channel{
		Name:    displayName,
		Handle:  handle,
		AddedAt: time.Now().UnixMilli(),
	})

	if err := r.store.Put(ctx, r.docID, set); err != nil {
		return AddedChannel{}, fmt.Errorf("registry: persist add: %w", err)
	}

	return AddedChannel{Name: displayName, Handle: handle, Feed: feed, Category: category}, nil
}

// Remove filters the handle out of its (feed, category) bucket and
// persists. Removing a channel that is not there is a successful no-op.
func (r *Registry) Remove(ctx context.Context, handle, feed, category string) error {
	set := r.List(ctx)

	bucket, ok := set.Channels[feed][category]
	if !ok {
		return nil
	}

	kept := bucket[:0]
	for _, ch := range bucket {
		if ch.Handle != handle {
			kept = append(kept, ch)
		}
	}
	if len(kept) == len(bucket) {
		return nil
	}
	set.Channels[feed][category] = kept

	if err := r.store.Put(ctx, r.docID, set); err != nil {
		return fmt.Errorf("registry: persist remove: %w", err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

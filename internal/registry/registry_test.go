package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"yt-curator/internal/models"
	"yt-curator/internal/test"
)

const testDocID = "channels-doc"

func TestAddAndList(t *testing.T) {
	store := test.NewMemoryBlob()
	reg := New(store, testDocID)
	ctx := context.Background()

	added, err := reg.Add(ctx, "https://youtube.com/@ParlayRevival", "Sailing Parlay Revival", "", "")
	assert.NoError(t, err)
	assert.Equal(t, "@ParlayRevival", added.Handle)
	assert.Equal(t, models.FeedEntertainment, added.Feed)
	assert.Equal(t, "Sailing", added.Category)

	set := reg.List(ctx)
	bucket := set.Channels[models.FeedEntertainment]["Sailing"]
	if assert.Len(t, bucket, 1) {
		assert.Equal(t, "Sailing Parlay Revival", bucket[0].Name)
		assert.Equal(t, "@ParlayRevival", bucket[0].Handle)
		assert.NotZero(t, bucket[0].AddedAt)
	}
}

func TestAddExplicitPlacement(t *testing.T) {
	store := test.NewMemoryBlob()
	reg := New(store, testDocID)

	added, err := reg.Add(context.Background(), "@somebody", "", models.FeedNews, "Politics")
	assert.NoError(t, err)
	assert.Equal(t, "somebody", added.Name)
	assert.Equal(t, models.FeedNews, added.Feed)
	assert.Equal(t, "Politics", added.Category)
}

func TestAddDuplicate(t *testing.T) {
	store := test.NewMemoryBlob()
	reg := New(store, testDocID)
	ctx := context.Background()

	_, err := reg.Add(ctx, "https://youtube.com/@foo", "Foo", models.FeedResearch, "General")
	assert.NoError(t, err)

	_, err = reg.Add(ctx, "https://youtube.com/@foo", "Foo Again", models.FeedResearch, "General")
	assert.ErrorIs(t, err, ErrDuplicateChannel)

	// Same handle in another category is a different channel.
	_, err = reg.Add(ctx, "https://youtube.com/@foo", "Foo", models.FeedResearch, "Health")
	assert.NoError(t, err)
}

func TestAddInvalidURL(t *testing.T) {
	reg := New(test.NewMemoryBlob(), testDocID)
	_, err := reg.Add(context.Background(), "https://example.com/nothing", "", "", "")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestListDegradesToEmpty(t *testing.T) {
	store := test.NewMemoryBlob()
	store.FailGet = true
	reg := New(store, testDocID)

	set := reg.List(context.Background())
	for _, feed := range models.Feeds {
		assert.NotNil(t, set.Channels[feed])
		assert.Empty(t, set.Channels[feed])
	}
}

func TestRemove(t *testing.T) {
	store := test.NewMemoryBlob()
	reg := New(store, testDocID)
	ctx := context.Background()

	_, err := reg.Add(ctx, "@keep", "Keep", models.FeedResearch, "General")
	assert.NoError(t, err)
	_, err = reg.Add(ctx, "@drop", "Drop", models.FeedResearch, "General")
	assert.NoError(t, err)

	assert.NoError(t, reg.Remove(ctx, "@drop", models.FeedResearch, "General"))

	bucket := reg.List(ctx).Channels[models.FeedResearch]["General"]
	if assert.Len(t, bucket, 1) {
		assert.Equal(t, "@keep", bucket[0].Handle)
	}

	// Removing something absent is a successful no-op.
	assert.NoError(t, reg.Remove(ctx, "@ghost", models.FeedResearch, "General"))
	assert.NoError(t, reg.Remove(ctx, "@drop", models.FeedNews, "Nope"))
}

package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPhoto(id string) Photo {
	return Photo{
		Id:        id,
		CollageId: "collage-1",
		Url:       "/media/collage-1/" + id + ".jpg",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestUpsertAddsAndReplaces(t *testing.T) {
	photos := CreatePhotoStore()

	photos.Upsert(testPhoto("alpha"))
	assert.Equal(t, 1, photos.Count())
	assert.True(t, photos.Contains("alpha"))

	updated := testPhoto("alpha")
	updated.Url = "/media/collage-1/alpha-v2.jpg"
	photos.Upsert(updated)

	assert.Equal(t, 1, photos.Count())
	assert.Equal(t, updated.Url, photos.Photos()[0].Url)
}

func TestUpsertDuplicateIsSilent(t *testing.T) {
	photos := CreatePhotoStore()

	notifications := 0
	photos.OnChange(func([]Photo) { notifications++ })

	photos.Upsert(testPhoto("alpha"))
	photos.Upsert(testPhoto("alpha"))
	photos.Upsert(testPhoto("alpha"))

	assert.Equal(t, 1, photos.Count())
	assert.Equal(t, 1, notifications)
}

func TestRemove(t *testing.T) {
	photos := CreatePhotoStore()
	photos.Upsert(testPhoto("alpha"))
	photos.Upsert(testPhoto("bravo"))

	photos.Remove("alpha")

	assert.Equal(t, 1, photos.Count())
	assert.False(t, photos.Contains("alpha"))
	assert.True(t, photos.Contains("bravo"))
}

func TestRemoveAbsentIsSilent(t *testing.T) {
	photos := CreatePhotoStore()
	photos.Upsert(testPhoto("alpha"))

	notifications := 0
	photos.OnChange(func([]Photo) { notifications++ })

	photos.Remove("ghost")
	photos.Remove("ghost")

	assert.Equal(t, 1, photos.Count())
	assert.Equal(t, 0, notifications)
}

func TestSetAllReplacesEverything(t *testing.T) {
	photos := CreatePhotoStore()
	photos.Upsert(testPhoto("stale"))

	photos.SetAll([]Photo{testPhoto("alpha"), testPhoto("bravo")})

	assert.Equal(t, 2, photos.Count())
	assert.False(t, photos.Contains("stale"))
	assert.True(t, photos.Contains("alpha"))
	assert.True(t, photos.Contains("bravo"))
}

func TestClear(t *testing.T) {
	photos := CreatePhotoStore()
	photos.Upsert(testPhoto("alpha"))

	notifications := 0
	photos.OnChange(func([]Photo) { notifications++ })

	photos.Clear()
	photos.Clear()

	assert.Equal(t, 0, photos.Count())
	assert.Equal(t, 1, notifications, "clearing an empty store must not notify")
}

func TestOnChangeDeliversSnapshots(t *testing.T) {
	photos := CreatePhotoStore()

	var lastSnapshot []Photo
	photos.OnChange(func(snapshot []Photo) { lastSnapshot = snapshot })

	photos.Upsert(testPhoto("alpha"))
	require.Len(t, lastSnapshot, 1)

	// Mutating the snapshot must not affect the store
	lastSnapshot[0].Id = "mutated"
	assert.True(t, photos.Contains("alpha"))
	assert.False(t, photos.Contains("mutated"))
}

func TestOnChangeUnsubscribe(t *testing.T) {
	photos := CreatePhotoStore()

	notifications := 0
	unsubscribe := photos.OnChange(func([]Photo) { notifications++ })

	photos.Upsert(testPhoto("alpha"))
	unsubscribe()
	photos.Upsert(testPhoto("bravo"))

	assert.Equal(t, 1, notifications)
}

func TestListenersMayCallBackIntoTheStore(t *testing.T) {
	photos := CreatePhotoStore()

	var observedCount int
	photos.OnChange(func([]Photo) {
		observedCount = photos.Count()
	})

	photos.Upsert(testPhoto("alpha"))

	assert.Equal(t, 1, observedCount)
}

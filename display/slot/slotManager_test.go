package slot

import (
	"testing"
	"time"

	"mosaicBackend/display/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photoAt(id string, minute int) store.Photo {
	return store.Photo{
		Id:        id,
		CreatedAt: time.Date(2025, 6, 1, 12, minute, 0, 0, time.UTC),
	}
}

func TestReconcileAssignsByCreationOrder(t *testing.T) {
	manager := CreateSlotManager(5)

	// Delivered out of order; assignment follows creation time, not arrival
	manager.Reconcile([]store.Photo{
		photoAt("charlie", 2),
		photoAt("alpha", 0),
		photoAt("bravo", 1),
	})

	assert.Equal(t, map[string]int{
		"alpha":   0,
		"bravo":   1,
		"charlie": 2,
	}, manager.Assignments())
}

func TestReconcileTiesBreakOnId(t *testing.T) {
	manager := CreateSlotManager(3)

	manager.Reconcile([]store.Photo{
		photoAt("bravo", 0),
		photoAt("alpha", 0),
	})

	assert.Equal(t, map[string]int{
		"alpha": 0,
		"bravo": 1,
	}, manager.Assignments())
}

func TestReconcileIsIdempotent(t *testing.T) {
	manager := CreateSlotManager(4)
	photos := []store.Photo{
		photoAt("alpha", 0),
		photoAt("bravo", 1),
	}

	manager.Reconcile(photos)
	before := manager.Assignments()

	manager.Reconcile(photos)
	assert.Equal(t, before, manager.Assignments())
}

func TestReconcileNeverMovesLivePhotos(t *testing.T) {
	manager := CreateSlotManager(10)

	manager.Reconcile([]store.Photo{
		photoAt("alpha", 0),
		photoAt("bravo", 1),
		photoAt("charlie", 2),
	})

	slotOfCharlie, ok := manager.SlotOf("charlie")
	require.True(t, ok)

	// Photos around charlie churn; its slot must not change
	manager.Reconcile([]store.Photo{
		photoAt("charlie", 2),
		photoAt("delta", 3),
		photoAt("echo", 4),
	})

	stillThere, ok := manager.SlotOf("charlie")
	require.True(t, ok)
	assert.Equal(t, slotOfCharlie, stillThere)
}

func TestFreedSlotsAreRecycledFirst(t *testing.T) {
	manager := CreateSlotManager(3)

	manager.Reconcile([]store.Photo{
		photoAt("alpha", 0),
		photoAt("bravo", 1),
		photoAt("charlie", 2),
	})

	// Remove the middle photo, then add a new one: it takes the freed slot 1
	manager.Reconcile([]store.Photo{
		photoAt("alpha", 0),
		photoAt("charlie", 2),
	})
	manager.Reconcile([]store.Photo{
		photoAt("alpha", 0),
		photoAt("charlie", 2),
		photoAt("delta", 3),
	})

	slotOfDelta, ok := manager.SlotOf("delta")
	require.True(t, ok)
	assert.Equal(t, 1, slotOfDelta)
}

func TestFreedSlotsRecycleInReleaseOrder(t *testing.T) {
	manager := CreateSlotManager(4)

	manager.Reconcile([]store.Photo{
		photoAt("alpha", 0),
		photoAt("bravo", 1),
		photoAt("charlie", 2),
		photoAt("delta", 3),
	})

	manager.Reconcile([]store.Photo{photoAt("alpha", 0), photoAt("charlie", 2), photoAt("delta", 3)})
	manager.Reconcile([]store.Photo{photoAt("alpha", 0), photoAt("delta", 3)})

	// bravo's slot 1 was freed before charlie's slot 2
	manager.Reconcile([]store.Photo{
		photoAt("alpha", 0),
		photoAt("delta", 3),
		photoAt("echo", 4),
		photoAt("foxtrot", 5),
	})

	slotOfEcho, _ := manager.SlotOf("echo")
	slotOfFoxtrot, _ := manager.SlotOf("foxtrot")
	assert.Equal(t, 1, slotOfEcho)
	assert.Equal(t, 2, slotOfFoxtrot)
}

func TestNoTwoPhotosShareASlot(t *testing.T) {
	manager := CreateSlotManager(8)

	photos := make([]store.Photo, 0, 8)
	for i, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		photos = append(photos, photoAt(id, i))
	}
	manager.Reconcile(photos)

	// Churn a few times
	manager.Reconcile(photos[2:])
	manager.Reconcile(append(photos[2:], photoAt("i", 9), photoAt("j", 10)))

	taken := map[int]string{}
	for photoId, slotIndex := range manager.Assignments() {
		previous, collision := taken[slotIndex]
		require.False(t, collision, "slot %d held by both %s and %s", slotIndex, previous, photoId)
		taken[slotIndex] = photoId
		assert.GreaterOrEqual(t, slotIndex, 0)
		assert.Less(t, slotIndex, 8)
	}
}

func TestCapacityLimitsAssignments(t *testing.T) {
	manager := CreateSlotManager(2)

	manager.Reconcile([]store.Photo{
		photoAt("alpha", 0),
		photoAt("bravo", 1),
		photoAt("charlie", 2),
	})

	assignments := manager.Assignments()
	assert.Len(t, assignments, 2)
	_, overflowAssigned := assignments["charlie"]
	assert.False(t, overflowAssigned)
}

func TestZeroCapacityAssignsNothing(t *testing.T) {
	manager := CreateSlotManager(0)

	manager.Reconcile([]store.Photo{photoAt("alpha", 0)})

	assert.Empty(t, manager.Assignments())
}

func TestResizeDropsOutOfRangeAssignments(t *testing.T) {
	manager := CreateSlotManager(4)

	manager.Reconcile([]store.Photo{
		photoAt("alpha", 0),
		photoAt("bravo", 1),
		photoAt("charlie", 2),
		photoAt("delta", 3),
	})

	manager.Resize(2)

	assignments := manager.Assignments()
	assert.Equal(t, map[string]int{
		"alpha": 0,
		"bravo": 1,
	}, assignments)

	// Growing back does not resurrect the dropped assignments by itself
	manager.Resize(4)
	assert.Equal(t, assignments, manager.Assignments())

	// The next reconcile re-seats them on the now-free indices
	manager.Reconcile([]store.Photo{
		photoAt("alpha", 0),
		photoAt("bravo", 1),
		photoAt("charlie", 2),
		photoAt("delta", 3),
	})
	assert.Len(t, manager.Assignments(), 4)
}

func TestPhotoAt(t *testing.T) {
	manager := CreateSlotManager(2)
	manager.Reconcile([]store.Photo{photoAt("alpha", 0)})

	photoId, ok := manager.PhotoAt(0)
	require.True(t, ok)
	assert.Equal(t, "alpha", photoId)

	_, ok = manager.PhotoAt(1)
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	manager := CreateSlotManager(3)
	manager.Reconcile([]store.Photo{photoAt("alpha", 0), photoAt("bravo", 1)})

	manager.Reset()

	assert.Empty(t, manager.Assignments())
	assert.Equal(t, 3, manager.Capacity())

	// A fresh reconcile starts from slot 0 again
	manager.Reconcile([]store.Photo{photoAt("charlie", 2)})
	slotOfCharlie, _ := manager.SlotOf("charlie")
	assert.Equal(t, 0, slotOfCharlie)
}

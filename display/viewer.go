package display

import (
	"sync"

	"mosaicBackend/display/feed"
	"mosaicBackend/display/pattern"
	"mosaicBackend/display/scene"
	"mosaicBackend/display/slot"
	"mosaicBackend/display/store"
	"mosaicBackend/realtime"
)

type (
	// Viewer The process-wide display pipeline for whichever collage is currently
	// open: photo store, slot assignments, feed reconciliation and scene
	// composition. Only one collage's data is held at a time; opening a new one
	// tears the previous subscription, polling and store contents down first.
	Viewer interface {
		Open(collageId string, settings pattern.Settings)
		Close()

		// Frame Composes the render list for one tick. The settings snapshot is
		// taken fresh per call so live settings changes apply immediately, never
		// through a captured reference.
		Frame(simTime float64, settings pattern.Settings) []scene.RenderItem

		CollageId() string
		IsSubscribed() bool
		IsPolling() bool
	}

	viewer struct {
		photoStore store.PhotoStore
		slots      slot.SlotManager
		engine     feed.Engine
		composer   scene.Composer

		frameMutex *sync.Mutex
	}
)

func CreateViewer(
	photoFeed realtime.Feed[store.Photo],
	fetcher feed.PhotoFetcher,
	options feed.Options,
) Viewer {
	photoStore := store.CreatePhotoStore()
	slots := slot.CreateSlotManager(0)

	v := &viewer{
		photoStore: photoStore,
		slots:      slots,
		engine:     feed.CreateEngine(photoFeed, fetcher, photoStore, options),
		composer:   scene.CreateComposer(pattern.CreateGeneratorSet()),
		frameMutex: &sync.Mutex{},
	}

	// Every store change, whether from the feed or from polling, drives a slot
	// reconcile. Reconcile converges to the same assignments regardless of call
	// order, so redundant notifications are harmless.
	photoStore.OnChange(func(photos []store.Photo) {
		v.slots.Reconcile(photos)
	})

	return v
}

func (v *viewer) Open(collageId string, settings pattern.Settings) {
	v.slots.Reset()
	v.slots.Resize(settings.Capacity)
	v.engine.Open(collageId)
}

func (v *viewer) Close() {
	v.engine.Close()
	v.slots.Reset()
}

func (v *viewer) Frame(simTime float64, settings pattern.Settings) []scene.RenderItem {
	v.frameMutex.Lock()
	defer v.frameMutex.Unlock()

	// Capacity may have changed since the last tick. Resize is a no-op when it
	// hasn't, and a redundant reconcile converges to the same assignments.
	v.slots.Resize(settings.Capacity)
	photos := v.photoStore.Photos()
	v.slots.Reconcile(photos)

	return v.composer.Frame(photos, v.slots, simTime, settings)
}

func (v *viewer) CollageId() string {
	return v.engine.CollageId()
}

func (v *viewer) IsSubscribed() bool {
	return v.engine.IsSubscribed()
}

func (v *viewer) IsPolling() bool {
	return v.engine.IsPolling()
}

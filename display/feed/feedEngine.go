package feed

import (
	"context"
	"sync"
	"time"

	"mosaicBackend/display/store"
	"mosaicBackend/realtime"
	"mosaicBackend/types"
	"mosaicBackend/utils"

	"github.com/charmbracelet/log"
)

type (
	// PhotoFetcher Full-state re-fetch used on open and by the polling fallback.
	PhotoFetcher interface {
		FetchPhotos(ctx context.Context, collageId string) ([]store.Photo, error)
	}

	// Engine The reconciliation state machine between the change feed and the
	// photo store. At most one collage is open at a time; opening a new one tears
	// the previous subscription and polling down first. The engine never retries
	// the connection itself, it only reacts to the feed's status transitions and
	// polls the full photo list while the subscription is anything but subscribed.
	Engine interface {
		Open(collageId string)
		Close()

		CollageId() string
		IsSubscribed() bool
		IsPolling() bool
	}

	Options struct {
		PollInterval       time.Duration
		LivenessInterval   time.Duration
		DeleteRecheckDelay time.Duration
	}

	engine struct {
		photoFeed  realtime.Feed[store.Photo]
		fetcher    PhotoFetcher
		photoStore store.PhotoStore
		options    Options

		collageId    string
		subscription realtime.Subscription
		subscribed   bool
		lastStatus   types.SubscriptionStatus

		polling  bool
		pollStop chan struct{}
		loopStop chan struct{}

		rechecks utils.Schedule[deleteRecheck]

		// generation invalidates callbacks of torn-down sessions. Every Open and
		// Close bumps it; callbacks carry the generation they were created under.
		generation int

		mutex *sync.Mutex
	}

	deleteRecheck struct {
		photoId string
		due     time.Time
	}
)

func DefaultOptions() Options {
	return Options{
		PollInterval:       3 * time.Second,
		LivenessInterval:   10 * time.Second,
		DeleteRecheckDelay: 500 * time.Millisecond,
	}
}

func CreateEngine(
	photoFeed realtime.Feed[store.Photo],
	fetcher PhotoFetcher,
	photoStore store.PhotoStore,
	options Options,
) Engine {
	defaults := DefaultOptions()
	if options.PollInterval <= 0 {
		options.PollInterval = defaults.PollInterval
	}
	if options.LivenessInterval <= 0 {
		options.LivenessInterval = defaults.LivenessInterval
	}
	if options.DeleteRecheckDelay <= 0 {
		options.DeleteRecheckDelay = defaults.DeleteRecheckDelay
	}

	return &engine{
		photoFeed:  photoFeed,
		fetcher:    fetcher,
		photoStore: photoStore,
		options:    options,
		rechecks:   createRecheckSchedule(),
		mutex:      &sync.Mutex{},
	}
}

func createRecheckSchedule() utils.Schedule[deleteRecheck] {
	return utils.CreateSchedule(
		func(r deleteRecheck) string { return r.photoId },
		func(r deleteRecheck) time.Time { return r.due },
	)
}

func (e *engine) Open(collageId string) {
	e.mutex.Lock()

	previous := e.teardownLocked()
	generation := e.generation
	e.collageId = collageId
	e.rechecks = createRecheckSchedule()
	e.loopStop = make(chan struct{})

	go e.backgroundLoop(generation, e.loopStop)

	e.mutex.Unlock()

	if previous != nil {
		previous.Unsubscribe()
	}

	e.photoStore.Clear()

	subscription := e.photoFeed.Subscribe(
		collageId,
		func(event realtime.ChangeEvent[store.Photo]) { e.handleEvent(generation, event) },
		func(status types.SubscriptionStatus) { e.handleStatus(generation, status) },
	)
	e.adoptSubscription(generation, subscription)

	go e.refresh(generation)

	log.Info("Opened collage feed", "collage", collageId)
}

func (e *engine) Close() {
	e.mutex.Lock()
	previous := e.teardownLocked()
	e.mutex.Unlock()

	if previous != nil {
		previous.Unsubscribe()
	}

	e.photoStore.Clear()
}

func (e *engine) CollageId() string {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	return e.collageId
}

func (e *engine) IsSubscribed() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	return e.subscribed
}

func (e *engine) IsPolling() bool {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	return e.polling
}

// teardownLocked Stops polling and background work, invalidates all callbacks of
// the current session and hands the active subscription to the caller, which must
// unsubscribe it outside the lock since the feed reports the closed status
// synchronously.
func (e *engine) teardownLocked() realtime.Subscription {
	e.generation++

	previous := e.subscription
	e.subscription = nil
	e.subscribed = false
	e.lastStatus = types.Disconnected
	e.collageId = ""

	e.stopPollingLocked()

	if e.loopStop != nil {
		close(e.loopStop)
		e.loopStop = nil
	}

	return previous
}

func (e *engine) adoptSubscription(generation int, subscription realtime.Subscription) {
	e.mutex.Lock()

	if generation != e.generation {
		e.mutex.Unlock()
		subscription.Unsubscribe()
		return
	}

	e.subscription = subscription

	// The feed may not have reported any status yet. Until it confirms the
	// subscription, the polling fallback covers the gap.
	if !e.subscribed {
		e.startPollingLocked(generation)
	}

	e.mutex.Unlock()
}

func (e *engine) handleStatus(generation int, status types.SubscriptionStatus) {
	e.mutex.Lock()

	if generation != e.generation {
		e.mutex.Unlock()
		return
	}

	e.lastStatus = status

	if status == types.Subscribed {
		e.subscribed = true
		e.stopPollingLocked()
	} else {
		e.subscribed = false
		e.startPollingLocked(generation)
	}

	e.mutex.Unlock()
}

func (e *engine) handleEvent(generation int, event realtime.ChangeEvent[store.Photo]) {
	e.mutex.Lock()
	if generation != e.generation {
		e.mutex.Unlock()
		return
	}
	rechecks := e.rechecks
	e.mutex.Unlock()

	switch event.Type {
	case types.Insert, types.Update:
		if event.New != nil {
			e.photoStore.Upsert(*event.New)
		}
	case types.Delete:
		if event.Old == nil {
			return
		}

		e.photoStore.Remove(event.Old.Id)

		// A stale full-state response can race the delete and re-add the photo;
		// the delayed re-check removes it again.
		rechecks.Schedule(&deleteRecheck{
			photoId: event.Old.Id,
			due:     time.Now().Add(e.options.DeleteRecheckDelay),
		})
	}
}

func (e *engine) startPollingLocked(generation int) {
	if e.polling {
		return
	}

	e.polling = true
	e.pollStop = make(chan struct{})

	go e.pollLoop(generation, e.pollStop)

	log.Warn("Change feed is down, falling back to polling", "collage", e.collageId)
}

func (e *engine) stopPollingLocked() {
	if !e.polling {
		return
	}

	e.polling = false
	close(e.pollStop)
	e.pollStop = nil
}

func (e *engine) pollLoop(generation int, stop chan struct{}) {
	ticker := time.NewTicker(e.options.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.refresh(generation)
		}
	}
}

// backgroundLoop Pumps due delete re-checks and runs the periodic liveness check
// that proactively re-subscribes when the connected flag and the feed's last
// reported status disagree.
func (e *engine) backgroundLoop(generation int, stop chan struct{}) {
	recheckTicker := time.NewTicker(e.options.DeleteRecheckDelay / 4)
	livenessTicker := time.NewTicker(e.options.LivenessInterval)
	defer recheckTicker.Stop()
	defer livenessTicker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-recheckTicker.C:
			e.pumpRechecks(generation)
		case <-livenessTicker.C:
			e.checkLiveness(generation)
		}
	}
}

func (e *engine) pumpRechecks(generation int) {
	e.mutex.Lock()
	if generation != e.generation {
		e.mutex.Unlock()
		return
	}
	rechecks := e.rechecks
	e.mutex.Unlock()

	for {
		recheck := rechecks.TryPop()
		if recheck == nil {
			return
		}

		e.photoStore.Remove(recheck.photoId)
	}
}

func (e *engine) checkLiveness(generation int) {
	e.mutex.Lock()

	if generation != e.generation {
		e.mutex.Unlock()
		return
	}

	feedUp := e.lastStatus == types.Subscribed
	if e.subscribed == feedUp {
		e.mutex.Unlock()
		return
	}

	collageId := e.collageId
	previous := e.subscription
	e.subscription = nil
	e.mutex.Unlock()

	log.Warn("Feed liveness mismatch, re-subscribing", "collage", collageId)

	if previous != nil {
		previous.Unsubscribe()
	}

	subscription := e.photoFeed.Subscribe(
		collageId,
		func(event realtime.ChangeEvent[store.Photo]) { e.handleEvent(generation, event) },
		func(status types.SubscriptionStatus) { e.handleStatus(generation, status) },
	)
	e.adoptSubscription(generation, subscription)
}

func (e *engine) refresh(generation int) {
	e.mutex.Lock()
	if generation != e.generation {
		e.mutex.Unlock()
		return
	}
	collageId := e.collageId
	e.mutex.Unlock()

	photos, err := e.fetcher.FetchPhotos(context.Background(), collageId)
	if err != nil {
		log.Warnf("Failed to fetch photos of collage '%s': %s", collageId, err.Error())
		return
	}

	e.mutex.Lock()
	stale := generation != e.generation
	e.mutex.Unlock()

	if stale {
		return
	}

	e.photoStore.SetAll(photos)
}

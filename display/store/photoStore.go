package store

import (
	"sync"
	"time"

	"github.com/samber/lo"
)

type (
	// Photo The live-photo row as seen by the display pipeline.
	Photo struct {
		Id           string    `json:"id"`
		CollageId    string    `json:"collageId"`
		Url          string    `json:"url"`
		ThumbnailUrl string    `json:"thumbnailUrl,omitempty"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	// PhotoStore The authoritative in-memory photo list for the collage that is
	// currently open. All mutations are idempotent since the change feed only
	// guarantees at-least-once delivery, possibly duplicated or reordered.
	PhotoStore interface {
		// SetAll Replaces the full photo list. Used on initial load and by the
		// polling fallback.
		SetAll(photos []Photo)

		// Upsert Adds the photo if its id is absent, otherwise replaces it in place.
		Upsert(photo Photo)

		// Remove Drops the photo with the given id. Removing an absent id is a no-op.
		Remove(photoId string)

		Photos() []Photo
		Contains(photoId string) bool
		Count() int

		Clear()

		// OnChange Registers a listener that is called with a snapshot of the photo
		// list after every effective mutation. Returns an unsubscribe function.
		OnChange(listener func(photos []Photo)) func()
	}

	photoStore struct {
		photos     []Photo
		photoIndex map[string]int

		listeners    map[int]func(photos []Photo)
		nextListener int

		mutex *sync.Mutex
	}
)

func CreatePhotoStore() PhotoStore {
	return &photoStore{
		photos:     make([]Photo, 0),
		photoIndex: make(map[string]int),
		listeners:  make(map[int]func(photos []Photo)),
		mutex:      &sync.Mutex{},
	}
}

func (s *photoStore) SetAll(photos []Photo) {
	s.mutex.Lock()

	s.photos = make([]Photo, len(photos))
	copy(s.photos, photos)
	s.rebuildIndex()

	s.notifyLocked()
}

func (s *photoStore) Upsert(photo Photo) {
	s.mutex.Lock()

	if index, exists := s.photoIndex[photo.Id]; exists {
		if s.photos[index] == photo {
			s.mutex.Unlock()
			return
		}
		s.photos[index] = photo
	} else {
		s.photos = append(s.photos, photo)
		s.photoIndex[photo.Id] = len(s.photos) - 1
	}

	s.notifyLocked()
}

func (s *photoStore) Remove(photoId string) {
	s.mutex.Lock()

	index, exists := s.photoIndex[photoId]
	if !exists {
		s.mutex.Unlock()
		return
	}

	s.photos = append(s.photos[:index], s.photos[index+1:]...)
	s.rebuildIndex()

	s.notifyLocked()
}

func (s *photoStore) Photos() []Photo {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.snapshotLocked()
}

func (s *photoStore) Contains(photoId string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	_, exists := s.photoIndex[photoId]
	return exists
}

func (s *photoStore) Count() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return len(s.photos)
}

func (s *photoStore) Clear() {
	s.mutex.Lock()

	if len(s.photos) == 0 {
		s.mutex.Unlock()
		return
	}

	s.photos = make([]Photo, 0)
	s.photoIndex = make(map[string]int)

	s.notifyLocked()
}

func (s *photoStore) OnChange(listener func(photos []Photo)) func() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	listenerId := s.nextListener
	s.nextListener++
	s.listeners[listenerId] = listener

	return func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()

		delete(s.listeners, listenerId)
	}
}

// notifyLocked Snapshots state, releases the lock and invokes the listeners.
// Listeners run outside the lock so they can call back into the store.
func (s *photoStore) notifyLocked() {
	snapshot := s.snapshotLocked()
	listeners := lo.Values(s.listeners)
	s.mutex.Unlock()

	for _, listener := range listeners {
		listener(snapshot)
	}
}

func (s *photoStore) snapshotLocked() []Photo {
	snapshot := make([]Photo, len(s.photos))
	copy(snapshot, s.photos)
	return snapshot
}

func (s *photoStore) rebuildIndex() {
	s.photoIndex = make(map[string]int, len(s.photos))
	for i, photo := range s.photos {
		s.photoIndex[photo.Id] = i
	}
}

package utils

import (
	"slices"
	"sort"
	"sync"
	"time"
)

type (
	// Schedule A time-ordered queue of keyed items. Items become poppable once their
	// due time has passed. Keys are unique within the schedule.
	Schedule[T any] interface {
		Schedule(item *T)
		Reschedule(item *T)
		IsScheduled(key string) bool

		Remove(key string)

		// TryPop Pops the earliest item whose due time has passed, or nil.
		TryPop() *T
	}

	schedule[T any] struct {
		queue    []*T
		queueMap map[string]*T

		mutex *sync.Mutex

		keyGetter func(T) string
		dueGetter func(T) time.Time
	}
)

func CreateSchedule[T any](keyGetter func(T) string, dueGetter func(T) time.Time) Schedule[T] {
	return &schedule[T]{
		queue:     make([]*T, 0),
		queueMap:  make(map[string]*T),
		mutex:     &sync.Mutex{},
		keyGetter: keyGetter,
		dueGetter: dueGetter,
	}
}

func (s *schedule[T]) Schedule(item *T) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.has(s.keyGetter(*item)) {
		return
	}

	s.insert(s.keyGetter(*item), item)
}

func (s *schedule[T]) Reschedule(item *T) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.remove(s.keyGetter(*item))
	s.insert(s.keyGetter(*item), item)
}

func (s *schedule[T]) IsScheduled(key string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.has(key)
}

func (s *schedule[T]) Remove(key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.remove(key)
}

func (s *schedule[T]) TryPop() *T {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.queue) > 0 && !s.dueGetter(*s.queue[0]).After(time.Now()) {
		item := s.queue[0]

		s.queue = s.queue[1:]
		delete(s.queueMap, s.keyGetter(*item))

		return item
	}

	return nil
}

func (s *schedule[T]) has(key string) bool {
	_, ok := s.queueMap[key]

	return ok
}

func (s *schedule[T]) remove(key string) {
	if item, isScheduled := s.queueMap[key]; isScheduled {
		delete(s.queueMap, key)
		itemIndex := slices.Index(s.queue, item)
		s.queue = append(s.queue[:itemIndex], s.queue[itemIndex+1:]...)
	}
}

func (s *schedule[T]) insert(key string, item *T) {
	itemDue := s.dueGetter(*item)
	insertIndex := sort.Search(len(s.queue), func(i int) bool {
		return !s.dueGetter(*s.queue[i]).Before(itemDue)
	})

	if insertIndex == len(s.queue) {
		s.queue = append(s.queue, item)
		s.queueMap[key] = item
		return
	}

	s.queue = append(s.queue[:insertIndex+1], s.queue[insertIndex:]...)
	s.queue[insertIndex] = item
	s.queueMap[key] = item
}

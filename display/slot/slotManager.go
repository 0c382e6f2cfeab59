package slot

import (
	"sort"
	"sync"

	"mosaicBackend/display/store"

	"github.com/samber/lo"
)

type (
	// SlotManager Maps live photo ids to stable display slot indices in
	// [0, capacity). A photo keeps its slot for as long as it stays live, no matter
	// how the photos around it come and go. Slots freed by deletion are preferred
	// over never-used indices when the next photo claims a position, which keeps
	// the index range compact.
	//
	// Assignments are never persisted; the table is rebuilt from an empty state
	// whenever a collage view is opened.
	SlotManager interface {
		Capacity() int

		// Resize Updates the capacity. Assignments at indices beyond the new
		// capacity are dropped and stay unassigned until the next Reconcile.
		Resize(newCapacity int)

		// Reconcile Aligns the assignment table with the given live photo list.
		// Existing assignments of still-live photos are never touched. Calling it
		// twice with the same list is a no-op the second time.
		Reconcile(livePhotos []store.Photo)

		SlotOf(photoId string) (int, bool)

		// Assignments A copy of the current photo-id to slot-index table.
		Assignments() map[string]int

		// PhotoAt The photo id assigned to a slot, if any.
		PhotoAt(slotIndex int) (string, bool)

		Reset()
	}

	slotManager struct {
		capacity  int
		slots     map[string]int
		occupied  map[int]struct{}
		freeSlots []int

		mutex *sync.Mutex
	}
)

func CreateSlotManager(capacity int) SlotManager {
	if capacity < 0 {
		capacity = 0
	}

	return &slotManager{
		capacity:  capacity,
		slots:     make(map[string]int),
		occupied:  make(map[int]struct{}),
		freeSlots: make([]int, 0),
		mutex:     &sync.Mutex{},
	}
}

func (m *slotManager) Capacity() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.capacity
}

func (m *slotManager) Resize(newCapacity int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if newCapacity < 0 {
		newCapacity = 0
	}

	if newCapacity == m.capacity {
		return
	}

	m.capacity = newCapacity

	for photoId, slotIndex := range m.slots {
		if slotIndex >= newCapacity {
			delete(m.slots, photoId)
		}
	}

	m.occupied = make(map[int]struct{}, len(m.slots))
	for _, slotIndex := range m.slots {
		m.occupied[slotIndex] = struct{}{}
	}

	m.freeSlots = lo.Filter(m.freeSlots, func(slotIndex int, _ int) bool {
		return slotIndex < newCapacity
	})
}

func (m *slotManager) Reconcile(livePhotos []store.Photo) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	liveIds := make(map[string]struct{}, len(livePhotos))
	for _, photo := range livePhotos {
		liveIds[photo.Id] = struct{}{}
	}

	// Release slots of photos that are no longer live. Released slots go to the
	// front of the reuse queue in release order.
	for photoId, slotIndex := range m.slots {
		if _, stillLive := liveIds[photoId]; !stillLive {
			delete(m.slots, photoId)
			delete(m.occupied, slotIndex)
			m.freeSlots = append(m.freeSlots, slotIndex)
		}
	}

	unassigned := lo.Filter(livePhotos, func(photo store.Photo, _ int) bool {
		_, assigned := m.slots[photo.Id]
		return !assigned
	})

	// Assignment order must not depend on network delivery order.
	sort.SliceStable(unassigned, func(i, j int) bool {
		if !unassigned[i].CreatedAt.Equal(unassigned[j].CreatedAt) {
			return unassigned[i].CreatedAt.Before(unassigned[j].CreatedAt)
		}
		return unassigned[i].Id < unassigned[j].Id
	})

	for _, photo := range unassigned {
		slotIndex, ok := m.claimSlot()
		if !ok {
			break
		}

		m.slots[photo.Id] = slotIndex
		m.occupied[slotIndex] = struct{}{}
	}
}

func (m *slotManager) SlotOf(photoId string) (int, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	slotIndex, ok := m.slots[photoId]
	return slotIndex, ok
}

func (m *slotManager) Assignments() map[string]int {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	assignments := make(map[string]int, len(m.slots))
	for photoId, slotIndex := range m.slots {
		assignments[photoId] = slotIndex
	}

	return assignments
}

func (m *slotManager) PhotoAt(slotIndex int) (string, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for photoId, assigned := range m.slots {
		if assigned == slotIndex {
			return photoId, true
		}
	}

	return "", false
}

func (m *slotManager) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.slots = make(map[string]int)
	m.occupied = make(map[int]struct{})
	m.freeSlots = make([]int, 0)
}

// claimSlot Pops the next available slot index: freed slots first, then the lowest
// never-used index. Returns false when the capacity is exhausted.
func (m *slotManager) claimSlot() (int, bool) {
	for len(m.freeSlots) > 0 {
		slotIndex := m.freeSlots[0]
		m.freeSlots = m.freeSlots[1:]

		if _, taken := m.occupied[slotIndex]; !taken && slotIndex < m.capacity {
			return slotIndex, true
		}
	}

	for slotIndex := 0; slotIndex < m.capacity; slotIndex++ {
		if _, taken := m.occupied[slotIndex]; !taken {
			return slotIndex, true
		}
	}

	return 0, false
}

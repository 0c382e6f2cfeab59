package scene

import (
	"mosaicBackend/display/pattern"
	"mosaicBackend/display/slot"
	"mosaicBackend/display/store"
)

type (
	// RenderItem One display slot of a composed frame. Empty slots are included
	// so the renderer can fade positions in and out without re-deriving the
	// layout.
	RenderItem struct {
		Slot     int               `json:"slot"`
		Occupied bool              `json:"occupied"`
		PhotoId  string            `json:"photoId,omitempty"`
		Url      string            `json:"url,omitempty"`
		Pose     pattern.Placement `json:"pose"`
	}

	// Composer Produces the ephemeral per-tick render list from the photo store
	// contents, the slot assignments and the active pattern. The output is built
	// fresh every frame and never retained.
	Composer interface {
		Frame(photos []store.Photo, slots slot.SlotManager, simTime float64, settings pattern.Settings) []RenderItem
	}

	composer struct {
		generators pattern.GeneratorSet
	}
)

func CreateComposer(generators pattern.GeneratorSet) Composer {
	return &composer{
		generators: generators,
	}
}

func (c *composer) Frame(
	photos []store.Photo,
	slots slot.SlotManager,
	simTime float64,
	settings pattern.Settings,
) []RenderItem {
	visibleCount := pattern.VisibleCount(settings)
	if capacity := slots.Capacity(); capacity < visibleCount {
		visibleCount = capacity
	}
	if visibleCount <= 0 {
		return []RenderItem{}
	}

	photosById := make(map[string]store.Photo, len(photos))
	for _, photo := range photos {
		photosById[photo.Id] = photo
	}

	slotToPhoto := make(map[int]string, len(photos))
	for photoId, slotIndex := range slots.Assignments() {
		slotToPhoto[slotIndex] = photoId
	}

	frame := make([]RenderItem, 0, visibleCount)
	for slotIndex := 0; slotIndex < visibleCount; slotIndex++ {
		item := RenderItem{
			Slot: slotIndex,
			Pose: c.generators.Placement(slotIndex, visibleCount, simTime, settings),
		}

		if photoId, occupied := slotToPhoto[slotIndex]; occupied {
			if photo, known := photosById[photoId]; known {
				item.Occupied = true
				item.PhotoId = photo.Id
				item.Url = photo.Url
			}
		}

		frame = append(frame, item)
	}

	return frame
}

package pattern

import "math"

// Pattern names as stored in the collage settings document.
const (
	Grid   = "grid"
	Float  = "float"
	Wave   = "wave"
	Spiral = "spiral"
)

// MaxVisiblePhotos A hard ceiling on per-frame work regardless of configuration.
const MaxVisiblePhotos = 500

// EdgeToEdgePitchFactor The horizontal pitch as a fraction of photo size at which
// adjacent 16:9 photos touch without overlap. Empirically tuned, kept configurable
// rather than derived.
const EdgeToEdgePitchFactor = 0.562

// photoAspect Height of a photo as a fraction of its width (16:9).
const photoAspect = 9.0 / 16.0

type (
	Vector3 struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
		Z float64 `json:"z"`
	}

	// Placement The computed per-frame pose of one display slot.
	Placement struct {
		Position Vector3 `json:"position"`
		Rotation Vector3 `json:"rotation"`
	}

	// Settings The typed view of a collage's settings document, passed to the
	// generators as a fresh snapshot on every call.
	Settings struct {
		Pattern       string            `json:"pattern"`
		PhotoCount    int               `json:"photoCount"`
		Capacity      int               `json:"capacity"`
		PhotoSize     float64           `json:"photoSize"`
		PhotoRotation bool              `json:"photoRotation"`
		Animation     AnimationSettings `json:"animation"`
		Patterns      PatternSettings   `json:"patterns"`
	}

	AnimationSettings struct {
		Enabled bool    `json:"enabled"`
		Speed   float64 `json:"speed"`
	}

	PatternSettings struct {
		Grid   GridSettings   `json:"grid"`
		Float  FloatSettings  `json:"float"`
		Wave   WaveSettings   `json:"wave"`
		Spiral SpiralSettings `json:"spiral"`
	}

	GridSettings struct {
		// Spacing Gap control in [0, 1]. At exactly 0 the wall is edge-to-edge
		// and rigid.
		Spacing     float64 `json:"spacing"`
		AspectRatio float64 `json:"aspectRatio"`
		WallHeight  float64 `json:"wallHeight"`
	}

	FloatSettings struct {
		FloorSize   float64 `json:"floorSize"`
		StartHeight float64 `json:"startHeight"`
		MaxHeight   float64 `json:"maxHeight"`
		RiseSpeed   float64 `json:"riseSpeed"`
	}

	WaveSettings struct {
		Amplitude  float64 `json:"amplitude"`
		Frequency  float64 `json:"frequency"`
		BaseHeight float64 `json:"baseHeight"`
	}

	SpiralSettings struct {
		Radius     float64 `json:"radius"`
		HeightStep float64 `json:"heightStep"`
		AngleStep  float64 `json:"angleStep"`
		BaseHeight float64 `json:"baseHeight"`
	}

	// GeneratorSet Dispatches placement computation to the pattern generators.
	// All generators are pure; the only retained state is Float's per-slot seed
	// cache, which is itself deterministic and only ever grows.
	GeneratorSet interface {
		// Placement Computes the pose of one slot for the active pattern.
		// visibleCount is the number of slots currently rendered and simTime the
		// evolving simulation time in seconds.
		Placement(slotIndex int, visibleCount int, simTime float64, settings Settings) Placement
	}

	generatorSet struct {
		floatSeeds *floatSeedCache
	}
)

func CreateGeneratorSet() GeneratorSet {
	return &generatorSet{
		floatSeeds: createFloatSeedCache(),
	}
}

func (g *generatorSet) Placement(slotIndex int, visibleCount int, simTime float64, settings Settings) Placement {
	if visibleCount <= 0 || slotIndex < 0 || slotIndex >= visibleCount {
		return Placement{}
	}

	switch settings.Pattern {
	case Float:
		return g.floatPlacement(slotIndex, visibleCount, simTime, settings)
	case Wave:
		return wavePlacement(slotIndex, visibleCount, simTime, settings)
	case Spiral:
		return spiralPlacement(slotIndex, visibleCount, simTime, settings)
	default:
		return gridPlacement(slotIndex, visibleCount, simTime, settings)
	}
}

// VisibleCount The number of slots rendered per frame, bounded by the configured
// photo count, the capacity and the hard ceiling.
func VisibleCount(settings Settings) int {
	count := settings.PhotoCount
	if settings.Capacity < count {
		count = settings.Capacity
	}
	if count > MaxVisiblePhotos {
		count = MaxVisiblePhotos
	}
	if count < 0 {
		count = 0
	}

	return count
}

// speedMultiplier Normalizes the 0-100 animation speed setting so that 50 is the
// default 1.0x pace. Returns 0 when animation is disabled, which collapses every
// time-dependent term to zero.
func speedMultiplier(settings Settings) float64 {
	if !settings.Animation.Enabled {
		return 0
	}

	return settings.Animation.Speed / 50.0
}

func photoHeight(settings Settings) float64 {
	return settings.PhotoSize * photoAspect
}

// layoutColumns Computes the column count of a roughly rectangular layout.
// Guards the sqrt/ceil math against a zero count.
func layoutColumns(count int, aspectRatio float64) int {
	if count <= 0 {
		return 0
	}
	if aspectRatio <= 0 {
		aspectRatio = 1
	}

	columns := int(math.Ceil(math.Sqrt(float64(count) * aspectRatio)))
	if columns < 1 {
		columns = 1
	}

	return columns
}

func layoutRows(count int, columns int) int {
	if count <= 0 || columns <= 0 {
		return 0
	}

	return int(math.Ceil(float64(count) / float64(columns)))
}

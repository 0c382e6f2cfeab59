package pattern

import (
	"math"
	"math/rand"
	"sync"
)

const (
	floatDriftAmplitude = 0.35
	floatBobAmplitude   = 0.15
	floatWobbleAngle    = 0.08
	// floatPhaseStride An irrational stride (conjugate golden ratio) that spreads
	// per-slot phase offsets evenly over [0, 1).
	floatPhaseStride = 0.6180339887498949
)

type (
	floatSeedKey struct {
		floorSize float64
		slotCount int
	}

	floatSeedPoint struct {
		x float64
		z float64
	}

	// floatSeedCache Caches the deterministic horizontal base positions of the
	// float pattern. A slot must always reuse the same (x, z) seed even as the
	// photo occupying it changes, so entries are keyed by (floorSize, slotCount)
	// and the cache only ever grows.
	floatSeedCache struct {
		seeds map[floatSeedKey][]floatSeedPoint
		mutex *sync.Mutex
	}
)

func createFloatSeedCache() *floatSeedCache {
	return &floatSeedCache{
		seeds: make(map[floatSeedKey][]floatSeedPoint),
		mutex: &sync.Mutex{},
	}
}

func (c *floatSeedCache) points(floorSize float64, slotCount int) []floatSeedPoint {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := floatSeedKey{floorSize: floorSize, slotCount: slotCount}
	if points, ok := c.seeds[key]; ok {
		return points
	}

	// The seed is derived from the key alone so regenerating after a restart
	// yields the exact same footprint.
	seed := int64(slotCount)<<20 ^ int64(math.Round(floorSize*1000))
	generator := rand.New(rand.NewSource(seed))

	points := make([]floatSeedPoint, slotCount)
	for i := range points {
		points[i] = floatSeedPoint{
			x: (generator.Float64() - 0.5) * floorSize,
			z: (generator.Float64() - 0.5) * floorSize,
		}
	}

	c.seeds[key] = points
	return points
}

// floatPlacement Photos rise from below the floor to a configurable maximum height
// and recycle to the bottom in a continuous loop. Each slot keeps a stable
// pseudo-random horizontal base position covering the full floor footprint and a
// per-slot phase offset so the slots don't rise in lockstep. Float photos always
// yaw to face the origin so they stay legible while rising, regardless of the
// photo-rotation setting.
func (g *generatorSet) floatPlacement(slotIndex int, visibleCount int, simTime float64, settings Settings) Placement {
	float := settings.Patterns.Float

	points := g.floatSeeds.points(float.FloorSize, visibleCount)
	if slotIndex >= len(points) {
		return Placement{}
	}
	base := points[slotIndex]

	cycleHeight := float.MaxHeight - float.StartHeight
	if cycleHeight <= 0 {
		cycleHeight = 1
	}

	multiplier := speedMultiplier(settings)
	phaseOffset := math.Mod(float64(slotIndex)*floatPhaseStride, 1)

	risen := math.Mod(simTime*float.RiseSpeed*multiplier+phaseOffset*cycleHeight, cycleHeight)
	if risen < 0 {
		risen += cycleHeight
	}
	y := float.StartHeight + risen

	x := base.x
	z := base.z

	if settings.Animation.Enabled {
		drift := floatDriftAmplitude * multiplier
		x += math.Sin(simTime*multiplier*0.6+float64(slotIndex)) * drift
		z += math.Cos(simTime*multiplier*0.4+float64(slotIndex)*1.3) * drift
		y += math.Sin(simTime*multiplier*1.1+float64(slotIndex)*0.7) * floatBobAmplitude * multiplier
	}

	rotation := Vector3{
		Y: math.Atan2(x, z),
	}
	if settings.Animation.Enabled {
		rotation.Z = math.Sin(simTime*multiplier+float64(slotIndex)) * floatWobbleAngle
	}

	return Placement{
		Position: Vector3{X: x, Y: y, Z: z},
		Rotation: rotation,
	}
}

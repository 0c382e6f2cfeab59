package pattern

import "math"

// spiralPlacement Slots wind up a helix: the slot index maps to an angle along
// the spiral and a height step, while the whole spiral revolves with the shared
// speed-multiplier convention. Photos yaw to face the spiral axis.
func spiralPlacement(slotIndex int, visibleCount int, simTime float64, settings Settings) Placement {
	spiral := settings.Patterns.Spiral

	angleStep := spiral.AngleStep
	if angleStep == 0 {
		angleStep = 0.5
	}

	phase := simTime * speedMultiplier(settings)
	angle := float64(slotIndex)*angleStep + phase

	x := math.Cos(angle) * spiral.Radius
	z := math.Sin(angle) * spiral.Radius
	y := spiral.BaseHeight + float64(slotIndex)*spiral.HeightStep

	rotation := Vector3{
		Y: math.Atan2(x, z),
	}
	if settings.PhotoRotation {
		rotation.Z = math.Sin(phase+float64(slotIndex)*angleStep) * 0.05
	}

	return Placement{
		Position: Vector3{X: x, Y: y, Z: z},
		Rotation: rotation,
	}
}

package pattern

import "math"

const (
	gridSwayAmplitudeFactor = 0.05
	gridTiltAmplitude       = 0.06
	gridYawAmplitude        = 0.1
)

// gridPlacement Arranges slots into a rectangular wall facing the camera.
//
// With spacing at exactly 0 the wall is rigid and edge-to-edge: the horizontal
// pitch is EdgeToEdgePitchFactor of the photo size, the vertical pitch the full
// photo height, and no sway is applied even with animation enabled, since swaying
// an edge-to-edge wall would clip adjacent photos. Above 0 both axes use the
// identical photoSize + gap pitch formula and a small phase-shifted sway per
// column and row is layered on when animation is enabled.
func gridPlacement(slotIndex int, visibleCount int, simTime float64, settings Settings) Placement {
	grid := settings.Patterns.Grid

	columns := layoutColumns(visibleCount, grid.AspectRatio)
	rows := layoutRows(visibleCount, columns)
	if columns == 0 || rows == 0 {
		return Placement{}
	}

	column := slotIndex % columns
	row := slotIndex / columns

	var pitchX, pitchY float64
	if grid.Spacing <= 0 {
		pitchX = settings.PhotoSize * EdgeToEdgePitchFactor
		pitchY = photoHeight(settings)
	} else {
		gap := grid.Spacing * settings.PhotoSize
		pitchX = settings.PhotoSize + gap
		pitchY = settings.PhotoSize + gap
	}

	x := (float64(column) - float64(columns-1)/2) * pitchX
	y := grid.WallHeight + float64(rows-1-row)*pitchY
	z := 0.0

	animated := settings.Animation.Enabled && grid.Spacing > 0
	phase := simTime * speedMultiplier(settings)

	if animated {
		sway := settings.PhotoSize * gridSwayAmplitudeFactor
		x += math.Sin(phase+float64(column)*0.5) * sway
		y += math.Cos(phase+float64(row)*0.7) * sway * 0.5
	}

	rotation := Vector3{}
	if settings.PhotoRotation && grid.Spacing > 0 {
		rotation.Z = math.Sin(phase+float64(slotIndex)) * gridTiltAmplitude
		rotation.Y = math.Sin(phase*0.5+float64(column)) * gridYawAmplitude
	}

	return Placement{
		Position: Vector3{X: x, Y: y, Z: z},
		Rotation: rotation,
	}
}

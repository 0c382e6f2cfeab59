package pattern

import "math"

const (
	waveSecondaryFactor = 0.3
	waveTiltAmplitude   = 0.1
)

// wavePlacement A grid of columns and rows laid flat on the floor plane whose
// height follows a radial sine wave emanating from the layout center, plus a
// weaker secondary ripple. The wave phase advances at twice the normalized
// animation speed.
func wavePlacement(slotIndex int, visibleCount int, simTime float64, settings Settings) Placement {
	wave := settings.Patterns.Wave

	columns := layoutColumns(visibleCount, 1)
	rows := layoutRows(visibleCount, columns)
	if columns == 0 || rows == 0 {
		return Placement{}
	}

	column := slotIndex % columns
	row := slotIndex / columns

	pitch := settings.PhotoSize * 1.2
	x := (float64(column) - float64(columns-1)/2) * pitch
	z := (float64(row) - float64(rows-1)/2) * pitch

	distance := math.Sqrt(x*x + z*z)
	phase := simTime * speedMultiplier(settings) * 2

	y := wave.BaseHeight +
		math.Sin(distance*wave.Frequency-phase)*wave.Amplitude +
		math.Sin(x*wave.Frequency*0.5+phase*0.7)*wave.Amplitude*waveSecondaryFactor

	rotation := Vector3{}
	if settings.PhotoRotation {
		rotation.Y = math.Atan2(x, z)
		rotation.X = math.Sin(phase+distance*wave.Frequency) * waveTiltAmplitude
	}

	return Placement{
		Position: Vector3{X: x, Y: y, Z: z},
		Rotation: rotation,
	}
}

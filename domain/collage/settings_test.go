package collage

import (
	"testing"

	"mosaicBackend/display/pattern"
	"mosaicBackend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSettingsPatch(t *testing.T) {
	valid := []map[string]any{
		{},
		{"pattern": "wave"},
		{"photoCount": 25, "capacity": 200},
		{"animation": map[string]any{"enabled": false, "speed": 0}},
		{"patterns": map[string]any{"grid": map[string]any{"spacing": 0.0}}},
		{"camera": map[string]any{"fov": 75.0}},
	}
	for _, patch := range valid {
		assert.NoError(t, ValidateSettingsPatch(patch), "patch %v", patch)
	}

	invalid := []map[string]any{
		{"pattern": "vortex"},
		{"photoCount": -1},
		{"capacity": "lots"},
		{"photoSize": 0},
		{"animation": map[string]any{"speed": 150}},
		{"photoRotation": "yes"},
	}
	for _, patch := range invalid {
		assert.ErrorIs(t, ValidateSettingsPatch(patch), utils.ErrorInvalidSettings, "patch %v", patch)
	}
}

func TestMergeSettingsOntoStored(t *testing.T) {
	stored := DefaultSettings()
	stored["pattern"] = "wave"

	merged := MergeSettings(stored, map[string]any{
		"animation": map[string]any{"speed": 75},
	})

	assert.Equal(t, "wave", merged["pattern"])
	animation := merged["animation"].(map[string]any)
	assert.Equal(t, 75, animation["speed"])
	assert.Equal(t, true, animation["enabled"])
}

func TestMergeSettingsFallsBackToDefaults(t *testing.T) {
	merged := MergeSettings(nil, map[string]any{"pattern": "spiral"})

	assert.Equal(t, "spiral", merged["pattern"])
	assert.Equal(t, 100, merged["capacity"])
}

func TestParsePatternSettings(t *testing.T) {
	document := DefaultSettings()
	document["pattern"] = "float"
	document["capacity"] = 42

	settings, err := ParsePatternSettings(document)
	require.NoError(t, err)

	assert.Equal(t, pattern.Float, settings.Pattern)
	assert.Equal(t, 42, settings.Capacity)
	assert.Equal(t, 12.0, settings.Patterns.Float.FloorSize)
	assert.True(t, settings.Animation.Enabled)
	assert.Equal(t, 50.0, settings.Animation.Speed)
}

func TestSettingsDocumentRoundTrip(t *testing.T) {
	document := DefaultSettings()

	encoded, err := encodeSettings(document)
	require.NoError(t, err)

	decoded, err := DecodeSettings(encoded)
	require.NoError(t, err)

	assert.Equal(t, document["pattern"], decoded["pattern"])
	patterns := decoded["patterns"].(map[string]any)
	grid := patterns["grid"].(map[string]any)
	assert.Equal(t, 1.78, grid["aspectRatio"])
}

func TestDefaultSettingsAreSchemaValid(t *testing.T) {
	assert.NoError(t, ValidateSettingsPatch(DefaultSettings()))
}

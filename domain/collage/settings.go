package collage

import (
	"encoding/json"

	"mosaicBackend/display/pattern"
	"mosaicBackend/utils"

	"github.com/xeipuuv/gojsonschema"
)

// DefaultSettings The fixed baseline every collage starts from. Partial updates
// are deep-merged onto this (or the previously stored) document, so unspecified
// keys always keep a defined value.
func DefaultSettings() map[string]any {
	return map[string]any{
		"pattern":       pattern.Grid,
		"photoCount":    50,
		"capacity":      100,
		"photoSize":     1.0,
		"photoRotation": false,
		"animation": map[string]any{
			"enabled": true,
			"speed":   50,
		},
		"patterns": map[string]any{
			"grid": map[string]any{
				"spacing":     0.1,
				"aspectRatio": 1.78,
				"wallHeight":  2.0,
			},
			"float": map[string]any{
				"floorSize":   12.0,
				"startHeight": -2.0,
				"maxHeight":   8.0,
				"riseSpeed":   0.5,
			},
			"wave": map[string]any{
				"amplitude":  1.5,
				"frequency":  0.8,
				"baseHeight": 2.5,
			},
			"spiral": map[string]any{
				"radius":     5.0,
				"heightStep": 0.35,
				"angleStep":  0.55,
				"baseHeight": 0.5,
			},
		},
		"camera": map[string]any{
			"distance": 10.0,
			"height":   3.0,
			"fov":      60.0,
		},
		"lighting": map[string]any{
			"ambient":   0.6,
			"intensity": 1.2,
		},
	}
}

// settingsSchema Validates the shape of partial settings documents before they
// are merged. Unknown keys are allowed so camera and lighting extensions can pass
// through untouched.
var settingsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"pattern": map[string]any{
			"type": "string",
			"enum": []string{pattern.Grid, pattern.Float, pattern.Wave, pattern.Spiral},
		},
		"photoCount":    map[string]any{"type": "integer", "minimum": 0},
		"capacity":      map[string]any{"type": "integer", "minimum": 0},
		"photoSize":     map[string]any{"type": "number", "exclusiveMinimum": 0},
		"photoRotation": map[string]any{"type": "boolean"},
		"animation": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"enabled": map[string]any{"type": "boolean"},
				"speed":   map[string]any{"type": "number", "minimum": 0, "maximum": 100},
			},
		},
		"patterns": map[string]any{"type": "object"},
		"camera":   map[string]any{"type": "object"},
		"lighting": map[string]any{"type": "object"},
	},
}

// ValidateSettingsPatch Checks a partial settings document against the schema.
func ValidateSettingsPatch(patch map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(settingsSchema),
		gojsonschema.NewGoLoader(patch),
	)
	if err != nil || !result.Valid() {
		return utils.ErrorInvalidSettings
	}

	return nil
}

// MergeSettings Deep-merges a validated patch onto a stored document (or the
// default baseline when none is stored yet).
func MergeSettings(stored map[string]any, patch map[string]any) map[string]any {
	base := stored
	if base == nil {
		base = DefaultSettings()
	}

	return utils.DeepMerge(base, patch)
}

// ParsePatternSettings Converts a settings document into the typed snapshot the
// pattern generators consume.
func ParsePatternSettings(document map[string]any) (pattern.Settings, error) {
	data, err := json.Marshal(document)
	if err != nil {
		return pattern.Settings{}, err
	}

	var settings pattern.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return pattern.Settings{}, err
	}

	return settings, nil
}

func encodeSettings(document map[string]any) (string, error) {
	data, err := json.Marshal(document)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func DecodeSettings(document string) (map[string]any, error) {
	decoded := make(map[string]any)
	if err := json.Unmarshal([]byte(document), &decoded); err != nil {
		return nil, err
	}

	return decoded, nil
}

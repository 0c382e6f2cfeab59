package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeepMergeOverridesNestedKeys(t *testing.T) {
	base := map[string]any{
		"a": map[string]any{
			"b": 1,
			"c": 3,
		},
	}
	patch := map[string]any{
		"a": map[string]any{
			"b": 2,
		},
	}

	merged := DeepMerge(base, patch)

	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": 2,
			"c": 3,
		},
	}, merged)
}

func TestDeepMergeAddsNewKeys(t *testing.T) {
	base := map[string]any{"a": 1}
	patch := map[string]any{"b": 2}

	assert.Equal(t, map[string]any{"a": 1, "b": 2}, DeepMerge(base, patch))
}

func TestDeepMergeReplacesArraysAtomically(t *testing.T) {
	base := map[string]any{"list": []any{1, 2, 3}}
	patch := map[string]any{"list": []any{9}}

	assert.Equal(t, map[string]any{"list": []any{9}}, DeepMerge(base, patch))
}

func TestDeepMergeReplacesMismatchedTypes(t *testing.T) {
	base := map[string]any{"value": map[string]any{"nested": true}}
	patch := map[string]any{"value": 42}

	assert.Equal(t, map[string]any{"value": 42}, DeepMerge(base, patch))
}

func TestDeepMergeEmptyPatchKeepsBase(t *testing.T) {
	base := map[string]any{"a": 1, "b": map[string]any{"c": 2}}

	assert.Equal(t, base, DeepMerge(base, map[string]any{}))
}

func TestDeepMergeDoesNotMutateInputs(t *testing.T) {
	base := map[string]any{
		"a": map[string]any{"b": 1},
	}
	patch := map[string]any{
		"a": map[string]any{"b": 2},
	}

	_ = DeepMerge(base, patch)

	assert.Equal(t, 1, base["a"].(map[string]any)["b"])
	assert.Equal(t, 2, patch["a"].(map[string]any)["b"])
}

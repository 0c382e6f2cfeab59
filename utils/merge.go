package utils

// DeepMerge Recursively merges a partial document onto a base document and returns
// the merged result. Keys present in the patch override the base at any nesting
// depth, keys absent from the patch keep their base value. Nested objects are merged
// per key while arrays and scalars replace atomically. Neither input is mutated.
func DeepMerge(base map[string]any, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(patch))

	for key, value := range base {
		merged[key] = value
	}

	for key, patchValue := range patch {
		baseValue, exists := merged[key]
		if !exists {
			merged[key] = patchValue
			continue
		}

		baseMap, baseIsMap := baseValue.(map[string]any)
		patchMap, patchIsMap := patchValue.(map[string]any)

		if baseIsMap && patchIsMap {
			merged[key] = DeepMerge(baseMap, patchMap)
		} else {
			merged[key] = patchValue
		}
	}

	return merged
}

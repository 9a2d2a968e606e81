package metistools

import "sort"

// Keys returns the map's keys in sorted order so generated output stays
// deterministic across calls.
func Keys[T any](input map[string]T) []string {
	result := []string{}
	for key := range input {
		result = append(result, key)
	}

	sort.Strings(result)

	return result
}

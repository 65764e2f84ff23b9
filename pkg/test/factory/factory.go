package factory

import (
	"maps"

	fab "github.com/Goldziher/fabricator"
)

// Build fabricates a T with random field values. customData maps are merged
// left to right, so later maps win, and applied on top.
func Build[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	merged := make(map[string]any)
	for _, data := range customData {
		maps.Copy(merged, data)
	}

	return instance.Build(merged)
}

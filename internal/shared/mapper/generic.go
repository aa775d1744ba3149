// Package mapper converts slices of domain entities into response DTOs.
package mapper

// MapSlice applies mapFunc to each element. The result is never nil so an
// empty list encodes as [] rather than null.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}

// MapSlicePtrSkipNil applies mapFunc to each element of a pointer slice,
// skipping nil inputs and nil outputs.
func MapSlicePtrSkipNil[T any, R any](items []*T, mapFunc func(*T) *R) []*R {
	result := make([]*R, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if mapped := mapFunc(item); mapped != nil {
			result = append(result, mapped)
		}
	}
	return result
}

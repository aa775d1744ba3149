package mapper

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapSlice(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, strconv.Itoa))

	empty := MapSlice[int, string](nil, strconv.Itoa)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMapSlicePtrSkipNil(t *testing.T) {
	one, two, three := 1, 2, 3
	odd := func(v *int) *string {
		if *v%2 == 0 {
			return nil
		}
		s := strconv.Itoa(*v)
		return &s
	}

	result := MapSlicePtrSkipNil([]*int{&one, nil, &two, &three}, odd)
	if assert.Len(t, result, 2) {
		assert.Equal(t, "1", *result[0])
		assert.Equal(t, "3", *result[1])
	}
	assert.NotNil(t, MapSlicePtrSkipNil[int, string](nil, odd))
}

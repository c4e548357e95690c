package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSlice(t *testing.T) {
	assert.Nil(t, MapSlice[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, strconv.Itoa))
	assert.Equal(t, []string{}, MapSlice([]int{}, strconv.Itoa))
}

type row struct {
	ID   uint
	Name string
}

func TestMapSlicePtrWithID(t *testing.T) {
	rows := []*row{{ID: 1, Name: "a"}, nil, {ID: 2, Name: ""}, {ID: 3, Name: "c"}}

	t.Run("skips nil input and nil output", func(t *testing.T) {
		out, err := MapSlicePtrWithID(rows, func(r *row) (*string, error) {
			if r.Name == "" {
				return nil, nil
			}
			return &r.Name, nil
		}, func(r *row) uint { return r.ID })
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "c", *out[1])
	})

	t.Run("error names the id", func(t *testing.T) {
		_, err := MapSlicePtrWithID(rows, func(r *row) (*string, error) {
			if r.ID == 3 {
				return nil, errors.New("bad row")
			}
			return &r.Name, nil
		}, func(r *row) uint { return r.ID })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to map item ID 3")
	})
}

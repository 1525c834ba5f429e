package introspection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexedSubset_PreservesIndexOrder(t *testing.T) {
	s := NewIndexedSubset([]int{2, 0}, []string{"A", "B", "C"})

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"C", "A"}, s.Slice())
	assert.Equal(t, "C", s.At(0))
	assert.Equal(t, "A", s.At(1))
}

func TestIndexedSubset_Iterator(t *testing.T) {
	s := NewIndexedSubset([]int{2, 0}, []string{"A", "B", "C"})

	for round := 0; round < 2; round++ {
		it := s.Iterator()
		var got []string
		for it.HasNext() {
			v, err := it.Next()
			require.NoError(t, err)
			got = append(got, v)
		}
		assert.Equal(t, []string{"C", "A"}, got)

		_, err := it.Next()
		assert.ErrorIs(t, err, ErrNoSuchElement)
	}
}

func TestIndexedSubset_KeepsDuplicates(t *testing.T) {
	s := NewIndexedSubset([]int{1, 1, 0}, []int{10, 20})

	var got []int
	for v := range s.All() {
		got = append(got, v)
	}
	assert.Equal(t, []int{20, 20, 10}, got)
}

func TestIndexedSubset_AllStopsEarly(t *testing.T) {
	s := NewIndexedSubset([]int{0, 1, 2}, []string{"A", "B", "C"})

	var got []string
	for v := range s.All() {
		got = append(got, v)
		if v == "B" {
			break
		}
	}
	assert.Equal(t, []string{"A", "B"}, got)
}

func TestIndexedSubset_Empty(t *testing.T) {
	s := NewIndexedSubset[string](nil, []string{"A"})

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Slice())
	_, err := s.Iterator().Next()
	assert.ErrorIs(t, err, ErrNoSuchElement)
}

package hat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	_, err := New[int](0)
	require.ErrorIs(t, err, ErrInvalidPower)

	_, err = New[int](-2)
	require.ErrorIs(t, err, ErrInvalidPower)
}

func TestAppendAndGet(t *testing.T) {
	h, err := New[int](1)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		h.Append(i * 10)
	}
	require.Equal(t, 50, h.Size())

	for i := 0; i < 50; i++ {
		v, err := h.Get(i)
		require.NoError(t, err)
		require.Equal(t, i*10, v)
	}
}

func TestGrowthPreservesOrder(t *testing.T) {
	h, err := New[int](1)
	require.NoError(t, err)
	require.Equal(t, 4, h.Capacity())

	expected := make([]int, 0, 100)
	for i := 0; i < 100; i++ {
		h.Append(i)
		expected = append(expected, i)
	}

	require.Equal(t, expected, h.ToSlice())
	require.GreaterOrEqual(t, h.Capacity(), h.Size())
}

func TestNegativeIndex(t *testing.T) {
	h, err := New[string](2, "a", "b", "c")
	require.NoError(t, err)

	v, err := h.Get(-1)
	require.NoError(t, err)
	require.Equal(t, "c", v)

	v, err = h.Get(-3)
	require.NoError(t, err)
	require.Equal(t, "a", v)

	_, err = h.Get(-4)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestOutOfBounds(t *testing.T) {
	h, err := New[int](1, 1, 2)
	require.NoError(t, err)

	_, err = h.Get(2)
	require.ErrorIs(t, err, ErrOutOfBounds)

	require.ErrorIs(t, h.Set(5, 0), ErrOutOfBounds)
}

func TestSet(t *testing.T) {
	h, err := New[int](1, 1, 2, 3)
	require.NoError(t, err)

	require.NoError(t, h.Set(1, 20))
	require.NoError(t, h.Set(-1, 30))
	require.Equal(t, []int{1, 20, 30}, h.ToSlice())
}

func TestContains(t *testing.T) {
	h, err := New[int](1, 5, 6, 7)
	require.NoError(t, err)

	require.True(t, h.Contains(5))
	require.True(t, h.Contains(7))
	require.False(t, h.Contains(8))
}

func TestInitialLargerThanCapacity(t *testing.T) {
	initial := make([]int, 40)
	for i := range initial {
		initial[i] = i
	}

	h, err := New[int](1, initial...)
	require.NoError(t, err)
	require.Equal(t, initial, h.ToSlice())
	require.GreaterOrEqual(t, h.Capacity(), 40)
	require.Greater(t, h.Power(), 1)
}

func TestIsFull(t *testing.T) {
	h, err := New[int](1)
	require.NoError(t, err)

	for i := 0; i < h.Capacity(); i++ {
		h.Append(i)
	}
	require.True(t, h.IsFull())

	h.Append(99)
	require.False(t, h.IsFull())
	require.Equal(t, 5, h.Size())
}

func BenchmarkAppend(b *testing.B) {
	h, _ := New[int](4)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.Append(i)
	}
}

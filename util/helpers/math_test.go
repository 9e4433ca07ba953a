package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMin(t *testing.T) {
	require.Equal(t, 1, Min(3, 1, 2))
	require.Equal(t, -7, Min(-7))
	require.Equal(t, 0.5, Min(0.5, 0.75, 1.0))
}

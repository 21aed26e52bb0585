package stream_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labtdc/tdcstream/internal/stream"
)

func TestApplyOffsetShiftsAndSorts(t *testing.T) {
	path := writeFixture(t, [][2]uint64{{100, 0}, {100, 1}, {50, 0}})

	s, err := stream.Load(path, 7, 1)
	require.NoError(t, err)

	offsetPath := filepath.Join(t.TempDir(), "offsets.txt")
	// channel 0 shifted by -10, channel 1 by +5, others by 0; min is -10.
	require.NoError(t, os.WriteFile(offsetPath, []byte("-10 5 0 0 0 0 0 0\n"), 0o600))

	require.NoError(t, s.ApplyOffset(offsetPath))

	// channel0 shift = -10 - (-10) = 0; channel1 shift = 5 - (-10) = 15.
	// Events become 100, 115, 50; sorted ascending: 50, 100, 115.
	require.Equal(t, 3, s.Size())
	assert.Equal(t, uint64(50), s.Timestamp(0))
	assert.Equal(t, uint64(100), s.Timestamp(1))
	assert.Equal(t, uint64(115), s.Timestamp(2))
}

func TestApplyOffsetRejectsShortFile(t *testing.T) {
	path := writeFixture(t, [][2]uint64{{100, 0}})

	s, err := stream.Load(path, 7, 1)
	require.NoError(t, err)

	offsetPath := filepath.Join(t.TempDir(), "offsets.txt")
	require.NoError(t, os.WriteFile(offsetPath, []byte("1 2 3"), 0o600))

	require.Error(t, s.ApplyOffset(offsetPath))
}

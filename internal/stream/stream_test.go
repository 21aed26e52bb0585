package stream_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labtdc/tdcstream/internal/stream"
)

func writeFixture(t *testing.T, records [][2]uint64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.bin")

	buf := make([]byte, 40+len(records)*10)
	for i, rec := range records {
		offset := 40 + i*10
		binary.LittleEndian.PutUint64(buf[offset:], rec[0])
		binary.LittleEndian.PutUint16(buf[offset+8:], uint16(rec[1])) //nolint:gosec // test fixture, small values
	}

	require.NoError(t, os.WriteFile(path, buf, 0o600))

	return path
}

func TestExternalChannelProjectsAcrossBoxes(t *testing.T) {
	path := writeFixture(t, [][2]uint64{{100, 3}})

	s, err := stream.Load(path, 1, 2) // box 2, clock channel raw 0
	require.NoError(t, err)

	// box_number=2: external = raw_channel + (2-1)*8 + 1 = 3+8+1 = 12
	assert.Equal(t, uint16(12), s.ExternalChannel(0))
}

func TestIsClockMatchesRawChannelPlusOne(t *testing.T) {
	path := writeFixture(t, [][2]uint64{{100, 0}, {110, 4}})

	s, err := stream.Load(path, 5, 1) // clock_channel=5 means raw channel 4 is the clock
	require.NoError(t, err)

	assert.False(t, s.IsClock(0))
	assert.True(t, s.IsClock(1))
}

func TestFindNthClock(t *testing.T) {
	path := writeFixture(t, [][2]uint64{{10, 4}, {20, 0}, {30, 4}, {40, 4}})

	s, err := stream.Load(path, 5, 1)
	require.NoError(t, err)

	idx, err := s.FindNthClock(2)
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = s.FindNthClock(4)
	require.Error(t, err)
}

func TestCollectClocks(t *testing.T) {
	path := writeFixture(t, [][2]uint64{{10, 4}, {20, 0}, {30, 4}})

	s, err := stream.Load(path, 5, 1)
	require.NoError(t, err)

	assert.Equal(t, []uint64{10, 30}, s.CollectClocks())
}

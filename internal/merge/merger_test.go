package merge_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labtdc/tdcstream/internal/merge"
	"github.com/labtdc/tdcstream/internal/types"
)

// fakeSource is a hand-built merge.Source: explicit, already-sorted
// (timestamp, raw channel) pairs plus enough metadata to project external
// channels and locate clock ticks, with no dependency on the stream
// package's own Load/ingest path.
type fakeSource struct {
	timestamps   []uint64
	channels     []uint16
	numChannels  uint16
	boxNumber    uint16
	clockChannel uint16
}

func (f fakeSource) Size() int { return len(f.timestamps) }
func (f fakeSource) Timestamp(i int) uint64 { return f.timestamps[i] }

func (f fakeSource) ExternalChannel(i int) uint16 {
	return f.channels[i] + (f.boxNumber-1)*types.ChannelsPerBox + 1
}

func (f fakeSource) IsClock(i int) bool { return f.channels[i]+1 == f.clockChannel }
func (f fakeSource) NumChannels() uint16 { return f.numChannels }
func (f fakeSource) ClockChannel() uint16 { return f.clockChannel }

func (f fakeSource) FindNthClock(n int) (int, error) {
	count := 0

	for i := range f.timestamps {
		if f.IsClock(i) {
			count++
			if count == n {
				return i, nil
			}
		}
	}

	return 0, fmt.Errorf("not found")
}

func (f fakeSource) CollectClocks() []uint64 {
	clocks := make([]uint64, 0, len(f.timestamps))

	for i := range f.timestamps {
		if f.IsClock(i) {
			clocks = append(clocks, f.timestamps[i])
		}
	}

	return clocks
}

func TestMergeDropsBSideClocksAndTagsChannels(t *testing.T) {
	// Both boxes observe the exact same physical clock (slope 1, no drift),
	// starting aligned at their very first clock tick each.
	a := fakeSource{
		numChannels:  8,
		boxNumber:    1,
		clockChannel: 8,
		timestamps:   []uint64{0, 50, 100, 210, 330, 455, 590},
		channels:     []uint16{7, 0, 7, 7, 7, 7, 7},
	}
	b := fakeSource{
		numChannels:  8,
		boxNumber:    2,
		clockChannel: 8,
		timestamps:   []uint64{0, 100, 150, 210, 330, 455, 590},
		channels:     []uint16{7, 7, 1, 7, 7, 7, 7},
	}

	anchor := types.Anchor{MatchingClock: 1, BoxToMatch: 1}

	merged, err := merge.Merge(a, b, anchor, types.Options{MaxFitPoints: 100})
	require.NoError(t, err)

	require.Equal(t, 8, merged.Size())

	wantTimestamps := []uint64{0, 50, 100, 150, 210, 330, 455, 590}
	wantChannels := []uint16{7, 0, 7, 9, 7, 7, 7, 7}

	for i, want := range wantTimestamps {
		assert.Equalf(t, want, merged.Timestamp(i), "timestamp at %d", i)
	}

	for i, want := range wantChannels {
		assert.Equalf(t, want, merged.RawChannel(i), "channel at %d", i)
	}

	assert.Equal(t, uint16(16), merged.NumChannels())
	assert.Equal(t, uint16(8), merged.ClockChannel())
	assert.Equal(t, uint16(1), merged.BoxNumber())
}

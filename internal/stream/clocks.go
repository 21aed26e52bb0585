package stream

import (
	"fmt"
	"sort"

	"github.com/labtdc/tdcstream/internal/tdcerr"
	"github.com/labtdc/tdcstream/internal/types"
)

// CollectClocks returns the timestamps of every clock-channel event, in
// their original stream order.
func (s *Stream) CollectClocks() []uint64 {
	clocks := make([]uint64, 0, len(s.timestamps)/types.ChannelsPerBox+1)

	for i := range s.timestamps {
		if s.IsClock(i) {
			clocks = append(clocks, s.timestamps[i])
		}
	}

	return clocks
}

// FindNthClock returns the index (into the stream's own arrays) of the
// n-th clock event, 1-indexed. It returns ErrNotFound if the stream has
// fewer than n clock events.
func (s *Stream) FindNthClock(n int) (int, error) {
	count := 0

	for i := range s.timestamps {
		if s.IsClock(i) {
			count++
			if count == n {
				return i, nil
			}
		}
	}

	return 0, fmt.Errorf("%w: stream has only %d clock events, requested the %d-th", tdcerr.ErrNotFound, count, n)
}

// FindOneSecondIndex returns the smallest index i such that
// timestamp[i] - timestamp[0] >= OneSecBins, via binary search over the
// (by-construction monotone) timestamp array. Behaviour is undefined, per
// the data model, when the stream spans less than one second; callers must
// not rely on a specific result in that case.
func (s *Stream) FindOneSecondIndex() int {
	if len(s.timestamps) == 0 {
		return 0
	}

	origin := s.timestamps[0]

	return sort.Search(len(s.timestamps), func(i int) bool {
		return s.timestamps[i]-origin >= types.OneSecBins
	})
}

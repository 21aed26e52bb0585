package stream

import (
	"fmt"
	"sync"

	"github.com/labtdc/tdcstream/internal/ingest"
	"github.com/labtdc/tdcstream/internal/types"
)

// Load reads path via the ingest package and wraps the resulting arrays in
// a Stream with a freshly loaded box's metadata: NumChannels is always
// ChannelsPerBox, and per-channel offsets start at zero.
func Load(path string, clockChannel, boxNumber uint16) (*Stream, error) {
	timestamps, channels, err := ingest.Load(path)
	if err != nil {
		return nil, err
	}

	return newRaw(timestamps, channels, types.ChannelsPerBox, boxNumber, clockChannel), nil
}

// LoadSpec names one file to load as part of a LoadMany batch.
type LoadSpec struct {
	Path         string
	ClockChannel uint16
	BoxNumber    uint16
}

// LoadMany loads every spec's file concurrently, one goroutine per file, and
// joins before returning — the entry-point parallel-load pattern named by
// the concurrency model: workers own disjoint Streams exclusively, and
// failure in any one worker is reported (the first error encountered, by
// index order, wins) without cancelling the others.
func LoadMany(specs []LoadSpec) ([]*Stream, error) {
	results := make([]*Stream, len(specs))
	errs := make([]error, len(specs))

	var waitGroup sync.WaitGroup

	for i, spec := range specs {
		waitGroup.Add(1)

		go func(i int, spec LoadSpec) {
			defer waitGroup.Done()

			results[i], errs[i] = Load(spec.Path, spec.ClockChannel, spec.BoxNumber)
		}(i, spec)
	}

	waitGroup.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", specs[i].Path, err)
		}
	}

	return results, nil
}

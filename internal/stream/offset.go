package stream

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/farcloser/primordium/fault"

	"github.com/labtdc/tdcstream/internal/tdcerr"
)

// ApplyOffset reads NumChannels whitespace-separated signed 16-bit
// calibration offsets from path, shifts every event's timestamp by its
// channel's offset, and re-sorts the stream back into ascending timestamp
// order.
//
// offset is a soft property: re-invoking ApplyOffset re-reads the file and
// re-applies additively on top of already-shifted timestamps. It is a
// one-shot calibration step, not an idempotent one.
func (s *Stream) ApplyOffset(offsetPath string) error {
	offsets, err := readOffsets(offsetPath, int(s.numChannels))
	if err != nil {
		return err
	}

	copy(s.offset, offsets)

	minOff := int16(0)
	for _, o := range offsets {
		if o < minOff {
			minOff = o
		}
	}

	for i := range s.timestamps {
		shift := int64(offsets[s.channels[i]]) - int64(minOff)
		s.timestamps[i] = uint64(int64(s.timestamps[i]) + shift) //nolint:gosec // shift keeps the result non-negative by construction
	}

	s.insertionSort()

	return nil
}

func readOffsets(path string, numChannels int) ([]int16, error) {
	file, err := os.Open(path) //nolint:gosec // path is supplied by the run manifest/CLI flags
	if err != nil {
		return nil, fmt.Errorf("%w: opening offset file %s: %w", fault.ErrReadFailure, path, err)
	}
	defer file.Close()

	offsets := make([]int16, 0, numChannels)

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() && len(offsets) < numChannels {
		value, convErr := strconv.ParseInt(scanner.Text(), 10, 16)
		if convErr != nil {
			return nil, fmt.Errorf("%w: %s: %q is not a signed 16-bit integer", tdcerr.ErrFormat, path, scanner.Text())
		}

		offsets = append(offsets, int16(value))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading offset file %s: %w", fault.ErrReadFailure, path, err)
	}

	if len(offsets) < numChannels {
		return nil, fmt.Errorf("%w: %s: found %d offsets, need %d", tdcerr.ErrFormat, path, len(offsets), numChannels)
	}

	return offsets, nil
}

// insertionSort re-sorts the (timestamp, channel) pairs in place by
// ascending timestamp. The array is near-sorted after apply_offset (a
// per-channel shift of a few bins rarely reorders distant events), so
// insertion sort's O(n) best case is worth its worse worst case; a general
// comparison sort would throw that away.
func (s *Stream) insertionSort() {
	for i := 1; i < len(s.timestamps); i++ {
		ts := s.timestamps[i]
		ch := s.channels[i]

		j := i - 1
		for j >= 0 && s.timestamps[j] > ts {
			s.timestamps[j+1] = s.timestamps[j]
			s.channels[j+1] = s.channels[j]
			j--
		}

		s.timestamps[j+1] = ts
		s.channels[j+1] = ch
	}
}

// Package coincidence implements the single-pass windowed tally that turns
// a Stream's events into per-channel singles counts and n-fold coincidence
// counts. It is factored out of the stream package for testability, the
// same way the source's find_n_fold_coincidences is conceptually a Stream
// method but benefits from being exercised in isolation.
package coincidence

import "sort"

// Source is the narrow view of a Stream the scanner needs: just enough to
// walk events in order and know how to format a channel for printing. Any
// Stream satisfies this without the coincidence package importing stream.
type Source interface {
	Size() int
	Timestamp(i int) uint64
	RawChannel(i int) uint16
	NumChannels() uint16
	BoxNumber() uint16
}

// Result holds the running tallies produced by a scan.
type Result struct {
	Singles []uint64 // indexed by raw channel, length NumChannels()
	Tally   map[string]uint64
}

// scanner holds all per-scan state: the open window's buffer, whether it is
// still a candidate n-fold, and the running singles/tally accumulators.
// Modelled as a struct advanced one event at a time, mirroring the
// dropout detector's scanner/processSample/finalize shape.
type scanner struct {
	n          int
	windowBins uint64

	singles []uint64
	tally   map[string]uint64

	buffer      []uint16
	bufLen      int
	windowStart uint64
	stillGood   bool
	started     bool
}

func newScanner(n int, windowBins uint64, numChannels uint16) *scanner {
	return &scanner{
		n:          n,
		windowBins: windowBins,
		singles:    make([]uint64, numChannels),
		tally:      make(map[string]uint64),
		buffer:     make([]uint16, n),
	}
}

// processEvent advances the scan by one event, in stream order.
func (s *scanner) processEvent(timestamp uint64, rawChannel uint16) {
	s.singles[rawChannel]++

	if !s.started {
		s.started = true
		s.buffer[0] = rawChannel
		s.bufLen = 1
		s.windowStart = timestamp
		s.stillGood = true

		return
	}

	if timestamp-s.windowStart <= s.windowBins {
		switch {
		case s.bufLen < s.n:
			if s.channelInBuffer(rawChannel) {
				s.stillGood = false
			} else {
				s.buffer[s.bufLen] = rawChannel
				s.bufLen++
			}
		default:
			s.stillGood = false
		}

		return
	}

	s.closeWindow()

	s.buffer[0] = rawChannel
	s.bufLen = 1
	s.windowStart = timestamp
	s.stillGood = true
}

func (s *scanner) channelInBuffer(ch uint16) bool {
	for _, b := range s.buffer[:s.bufLen] {
		if b == ch {
			return true
		}
	}

	return false
}

// closeWindow tallies the current window if it is a clean n-fold. It is
// called when a new window opens, never at EOF: the final open window is
// deliberately left unflushed, since it races with events that will never
// arrive and the original tool does not emit it either.
func (s *scanner) closeWindow() {
	if !s.stillGood || s.bufLen != s.n {
		return
	}

	key := canonicalKey(s.buffer[:s.bufLen])
	s.tally[key]++
}

// finalize returns the accumulated result without flushing the open window.
func (s *scanner) finalize() *Result {
	return &Result{
		Singles: s.singles,
		Tally:   s.tally,
	}
}

// canonicalKey sorts a copy of the window's raw channels ascending and
// formats each as a zero-padded (to at least 2 digits) raw_channel+1,
// joined by '_'.
func canonicalKey(window []uint16) string {
	sorted := make([]uint16, len(window))
	copy(sorted, window)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	key := make([]byte, 0, len(sorted)*3)

	for i, ch := range sorted {
		if i > 0 {
			key = append(key, '_')
		}

		key = appendZeroPadded(key, ch+1)
	}

	return string(key)
}

func appendZeroPadded(dst []byte, v uint16) []byte {
	digits := []byte{}
	for v > 0 || len(digits) == 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}

	for len(digits) < 2 {
		digits = append([]byte{'0'}, digits...)
	}

	return append(dst, digits...)
}

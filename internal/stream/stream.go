// Package stream implements Stream: an ordered sequence of TDC events
// sharing a common time origin, plus the metadata needed to interpret and
// calibrate it (channel numbering, clock channel, per-channel offsets).
package stream

import "github.com/labtdc/tdcstream/internal/types"

// Stream owns its timestamp and channel arrays exclusively: it is built
// either by Load (from a file) or by the merge package (from two Streams),
// and nothing outside the owner mutates these slices concurrently.
type Stream struct {
	timestamps []uint64
	channels   []uint16

	numChannels  uint16
	boxNumber    uint16
	clockChannel uint16
	offset       []int16
}

// Size returns the number of events in the stream.
func (s *Stream) Size() int {
	return len(s.timestamps)
}

// Timestamp returns the bin timestamp of event i.
func (s *Stream) Timestamp(i int) uint64 {
	return s.timestamps[i]
}

// RawChannel returns the 0-based hardware channel of event i.
func (s *Stream) RawChannel(i int) uint16 {
	return s.channels[i]
}

// NumChannels returns the channel count of the logical unit this stream
// represents: ChannelsPerBox for a freshly loaded stream, the sum of both
// inputs' NumChannels for a merged one.
func (s *Stream) NumChannels() uint16 {
	return s.numChannels
}

// BoxNumber returns the 1-based physical box number used by
// ExternalChannel. Merged streams report 1.
func (s *Stream) BoxNumber() uint16 {
	return s.boxNumber
}

// ClockChannel returns the 1-based raw channel index that denotes a clock
// tick (i.e. RawChannel(i)+1 == ClockChannel() marks a clock event).
func (s *Stream) ClockChannel() uint16 {
	return s.clockChannel
}

// ExternalChannel projects the raw, box-local channel of event i into the
// global channel space spanning every physical box.
func (s *Stream) ExternalChannel(i int) uint16 {
	return s.channels[i] + (s.boxNumber-1)*types.ChannelsPerBox + 1
}

// IsClock reports whether event i is a clock-channel tick.
func (s *Stream) IsClock(i int) bool {
	return s.channels[i]+1 == s.clockChannel
}

// newRaw constructs a Stream directly from already-demuxed arrays, used by
// both Load and the merge package's single-pass merge.
func newRaw(timestamps []uint64, channels []uint16, numChannels, boxNumber, clockChannel uint16) *Stream {
	return &Stream{
		timestamps:   timestamps,
		channels:     channels,
		numChannels:  numChannels,
		boxNumber:    boxNumber,
		clockChannel: clockChannel,
		offset:       make([]int16, numChannels),
	}
}

// NewMerged constructs the Stream produced by the merge package: box_number
// is always 1, the clock channel is inherited from the first source stream,
// and per-channel offsets start zeroed.
func NewMerged(timestamps []uint64, channels []uint16, numChannels, clockChannel uint16) *Stream {
	return newRaw(timestamps, channels, numChannels, 1, clockChannel)
}

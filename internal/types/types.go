// Package types holds the data model shared across the ingest, stream,
// match, merge and coincidence packages.
package types

// Bin-level constants. One bin is the TDC's native timestamp unit, roughly
// 81 picoseconds; OneSecBins is the number of bins in one second of real
// time, used to cap merged streams to a single run.
const (
	HeaderSize    = 40
	TimestampSize = 8
	ChannelSize   = 2
	RecordSize    = TimestampSize + ChannelSize

	minViableBytes = HeaderSize + RecordSize

	BinSizeSeconds = 81e-12
	OneSecBins     = 12_345_679_012

	// MatchThreshold is the minimum ratio between the losing and winning
	// Matcher scan direction required to accept an anchor.
	MatchThreshold = 1000

	ChannelsPerBox = 8
)

// MinViableFileSize is HeaderSize+RecordSize: anything strictly between
// HeaderSize and this is a FormatError, while HeaderSize or less, and a
// file of exactly this size, load as a legal empty stream.
func MinViableFileSize() int64 {
	return minViableBytes
}

// Anchor is the result of Matcher: the clock tick in BoxToMatch that
// corresponds to the first clock tick of the other stream.
type Anchor struct {
	MatchingClock uint64
	BoxToMatch    uint8
}

// Options bundles the tuning parameters shared by Matcher, Merger and the
// coincidence scanner. Zero-value fields are replaced by each package's own
// defaults where zero is not itself a meaningful value.
type Options struct {
	MaxShift     int    // Matcher: maximum candidate shift scanned
	TimeDepth    int    // Matcher: depth of the delta-signature window
	MaxFitPoints int    // Merger: cap on points used in drift regression
	WindowBins   uint64 // CoincidenceScanner: window width in bins
	N            int    // CoincidenceScanner: fold count
}

// DefaultOptions returns the tuning defaults named in the external
// interface: max_shift=200, time_depth=20, max_fit_points=100. WindowBins
// and N have no universal default; callers must set them per run.
func DefaultOptions() Options {
	return Options{
		MaxShift:     200,
		TimeDepth:    20,
		MaxFitPoints: 100,
	}
}

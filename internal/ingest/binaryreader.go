// Package ingest parses the fixed-layout TDC timestamp file format into raw
// (timestamp, channel) pairs.
package ingest

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/farcloser/primordium/fault"

	"github.com/labtdc/tdcstream/internal/tdcerr"
	"github.com/labtdc/tdcstream/internal/types"
)

// Load reads a TDC timestamp file and demuxes its payload into parallel
// timestamp and channel arrays. The leading HeaderSize bytes are opaque and
// skipped verbatim; everything after is a sequence of fixed RecordSize
// records (8-byte little-endian timestamp, 2-byte little-endian channel).
// Trailing bytes beyond the last whole record are ignored.
func Load(path string) ([]uint64, []uint16, error) {
	file, err := os.Open(path) //nolint:gosec // path is supplied by the run manifest/CLI flags
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening %s: %w", fault.ErrReadFailure, path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: stat %s: %w", fault.ErrReadFailure, path, err)
	}

	size := info.Size()

	switch {
	case size <= types.HeaderSize:
		return []uint64{}, []uint16{}, nil
	case size < types.MinViableFileSize():
		return nil, nil, fmt.Errorf("%w: %s: %d bytes, too short for a single record", tdcerr.ErrFormat, path, size)
	case size == types.MinViableFileSize():
		// Exactly one record's worth of payload past the header still
		// reports as empty: a run must exceed HeaderSize+RecordSize to
		// contain even one complete record.
		return []uint64{}, []uint16{}, nil
	}

	if _, err := file.Seek(types.HeaderSize, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("%w: seeking past header in %s: %w", fault.ErrReadFailure, path, err)
	}

	payloadSize := size - types.HeaderSize
	numRecords := int(payloadSize / types.RecordSize)

	raw := make([]byte, int64(numRecords)*types.RecordSize)
	if _, err := io.ReadFull(file, raw); err != nil {
		return nil, nil, fmt.Errorf("%w: reading payload of %s: %w", fault.ErrReadFailure, path, err)
	}

	timestamps := make([]uint64, numRecords)
	channels := make([]uint16, numRecords)

	for i := range numRecords {
		offset := i * types.RecordSize
		timestamps[i] = binary.LittleEndian.Uint64(raw[offset:])
		channels[i] = binary.LittleEndian.Uint16(raw[offset+types.TimestampSize:])
	}

	return timestamps, channels, nil
}

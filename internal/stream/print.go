package stream

import (
	"bufio"
	"fmt"
	"os"

	"github.com/farcloser/primordium/fault"
)

// PrintData emits one line per event, "<timestamp> <external_channel>", in
// stream order, to path.
func (s *Stream) PrintData(path string) error {
	file, err := os.Create(path) //nolint:gosec // path is supplied by the run manifest/CLI flags
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", fault.ErrReadFailure, path, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	for i := range s.timestamps {
		if _, err := fmt.Fprintf(writer, "%d %d\n", s.timestamps[i], s.ExternalChannel(i)); err != nil {
			return fmt.Errorf("%w: writing %s: %w", fault.ErrReadFailure, path, err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("%w: flushing %s: %w", fault.ErrReadFailure, path, err)
	}

	return nil
}

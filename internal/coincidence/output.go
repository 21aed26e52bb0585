package coincidence

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/farcloser/primordium/fault"
)

// WriteSingles writes one line per channel with a non-zero count,
// "<raw_channel+1>\t<count>\n", in ascending channel order.
func WriteSingles(result *Result, path string) error {
	return writeLines(path, func(writer *bufio.Writer) error {
		for ch, count := range result.Singles {
			if count == 0 {
				continue
			}

			if _, err := fmt.Fprintf(writer, "%d\t%d\n", ch+1, count); err != nil {
				return err
			}
		}

		return nil
	})
}

// WriteCoincidences writes one line per tally entry, "<key>\t<count>\n", in
// ascending lexicographic key order.
func WriteCoincidences(result *Result, path string) error {
	keys := make([]string, 0, len(result.Tally))
	for key := range result.Tally {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return writeLines(path, func(writer *bufio.Writer) error {
		for _, key := range keys {
			if _, err := fmt.Fprintf(writer, "%s\t%d\n", key, result.Tally[key]); err != nil {
				return err
			}
		}

		return nil
	})
}

func writeLines(path string, body func(*bufio.Writer) error) error {
	file, err := os.Create(path) //nolint:gosec // path is supplied by the run manifest/CLI flags
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", fault.ErrReadFailure, path, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	if err := body(writer); err != nil {
		return fmt.Errorf("%w: writing %s: %w", fault.ErrReadFailure, path, err)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("%w: flushing %s: %w", fault.ErrReadFailure, path, err)
	}

	return nil
}

package stream

import "github.com/labtdc/tdcstream/internal/coincidence"

// FindNFoldCoincidences runs the single-pass windowed scan over the stream,
// writes the resulting singles and coincidence tallies to the given paths,
// and returns the scan result for callers that want to summarize it.
func (s *Stream) FindNFoldCoincidences(n int, windowBins uint64, singlesPath, coincidencesPath string) (*coincidence.Result, error) {
	result := coincidence.Scan(s, n, windowBins)

	if err := coincidence.WriteSingles(result, singlesPath); err != nil {
		return nil, err
	}

	if err := coincidence.WriteCoincidences(result, coincidencesPath); err != nil {
		return nil, err
	}

	return result, nil
}

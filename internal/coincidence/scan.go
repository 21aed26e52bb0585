package coincidence

// Scan runs the single-pass n-fold scan over src and returns the singles
// and coincidence tallies. n must be at least 1; windowBins is the window
// width in bins.
func Scan(src Source, n int, windowBins uint64) *Result {
	scan := newScanner(n, windowBins, src.NumChannels())

	for i := range src.Size() {
		scan.processEvent(src.Timestamp(i), src.RawChannel(i))
	}

	return scan.finalize()
}

// Package tdcstream orchestrates the TDC processing pipeline: loading one
// or more boxes' timestamp streams, chain-merging them with drift
// correction, and scanning the result for per-channel singles and n-fold
// coincidences.
package tdcstream

import (
	"fmt"

	"github.com/labtdc/tdcstream/internal/coincidence"
	"github.com/labtdc/tdcstream/internal/match"
	"github.com/labtdc/tdcstream/internal/merge"
	"github.com/labtdc/tdcstream/internal/stream"
	"github.com/labtdc/tdcstream/internal/types"
)

// Options configures a Run: the Matcher/Merger tuning parameters shared
// across every pairwise merge, plus the coincidence scan's fold count,
// window width, and output paths.
type Options struct {
	types.Options

	SinglesPath      string
	CoincidencesPath string

	// MergedDataPath, if set, additionally writes the final merged
	// stream's (timestamp, external_channel) pairs in ASCII.
	MergedDataPath string
}

// DefaultOptions returns the Matcher/Merger tuning defaults named in the
// external interface; N and WindowBins have no universal default and must
// be set by the caller.
func DefaultOptions() Options {
	return Options{Options: types.DefaultOptions()}
}

// Result summarizes one Run: the merged stream produced (the input stream
// itself when a single stream was given and no merge took place), and one
// Anchor per pairwise merge performed, in merge order, for diagnostic
// inspection of match quality.
type Result struct {
	Merged  *stream.Stream
	Anchors []types.Anchor

	EventCount  int
	Coincidence *coincidence.Result
}

// Run loads every input in specs (in parallel), then behaves exactly like
// RunMerge. Callers that need per-stream channel offsets applied before
// merging should load and offset-correct the streams themselves and call
// RunMerge directly instead.
func Run(specs []stream.LoadSpec, opts Options) (*Result, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one input is required")
	}

	streams, err := stream.LoadMany(specs)
	if err != nil {
		return nil, err
	}

	return RunMerge(streams, opts)
}

// RunMerge chain-merges already-loaded streams pairwise in the order given,
// scans the result for singles and n-fold coincidences when a singles or
// coincidences path is set, and writes the configured output files.
func RunMerge(streams []*stream.Stream, opts Options) (*Result, error) {
	if len(streams) == 0 {
		return nil, fmt.Errorf("at least one stream is required")
	}

	merged, anchors, err := chainMerge(streams, opts.Options)
	if err != nil {
		return nil, err
	}

	var coincResult *coincidence.Result

	// Per the driver's either/or contract: a run with no singles/coincidences
	// destination stops at the merged stream (typically paired with
	// MergedDataPath for inspection) instead of extracting coincidences.
	if opts.SinglesPath != "" || opts.CoincidencesPath != "" {
		coincResult, err = merged.FindNFoldCoincidences(opts.N, opts.WindowBins, opts.SinglesPath, opts.CoincidencesPath)
		if err != nil {
			return nil, err
		}
	}

	if opts.MergedDataPath != "" {
		if err := merged.PrintData(opts.MergedDataPath); err != nil {
			return nil, err
		}
	}

	return &Result{Merged: merged, Anchors: anchors, EventCount: merged.Size(), Coincidence: coincResult}, nil
}

// chainMerge folds streams left to right: match+merge the first two, then
// match+merge the running result with each subsequent stream. This is the
// four-fold.cpp composition pattern generalized to N inputs.
func chainMerge(streams []*stream.Stream, opts types.Options) (*stream.Stream, []types.Anchor, error) {
	merged := streams[0]

	anchors := make([]types.Anchor, 0, len(streams)-1)

	for _, next := range streams[1:] {
		anchor, err := match.Match(merged, next, opts)
		if err != nil {
			return nil, nil, err
		}

		merged, err = merge.Merge(merged, next, anchor, opts)
		if err != nil {
			return nil, nil, err
		}

		anchors = append(anchors, anchor)
	}

	return merged, anchors, nil
}

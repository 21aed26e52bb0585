// Package output converts a pipeline run into the canonical map structure
// used for console/JSON/markdown serialization.
package output

import (
	"strconv"

	"github.com/labtdc/tdcstream"
	"github.com/labtdc/tdcstream/internal/coincidence"
)

// ResultToMap converts a pipeline Result into a map suitable for
// format.Data.Meta.
func ResultToMap(result *tdcstream.Result) map[string]any {
	meta := map[string]any{
		"event_count":   result.EventCount,
		"merge_anchors": anchorsToSlice(result),
	}

	if result.Coincidence != nil {
		meta["singles"] = singlesToMap(result.Coincidence)
		meta["coincidences"] = result.Coincidence.Tally
	}

	return meta
}

func anchorsToSlice(result *tdcstream.Result) []any {
	anchors := make([]any, 0, len(result.Anchors))
	for _, a := range result.Anchors {
		anchors = append(anchors, map[string]any{
			"matching_clock": a.MatchingClock,
			"box_to_match":   a.BoxToMatch,
		})
	}

	return anchors
}

// CoincidenceResultToMap converts a bare coincidence scan result (no
// merge anchors, since the coincidences command runs against one stream)
// into the same map shape ResultToMap produces for the merged case.
func CoincidenceResultToMap(eventCount int, result *coincidence.Result) map[string]any {
	return map[string]any{
		"event_count":  eventCount,
		"singles":      singlesToMap(result),
		"coincidences": result.Tally,
	}
}

// singlesToMap builds a "<raw_channel+1>" -> count map, skipping channels
// with no events, matching the singles file's sparse line set.
func singlesToMap(result *coincidence.Result) map[string]uint64 {
	singles := make(map[string]uint64, len(result.Singles))

	for rawChannel, count := range result.Singles {
		if count == 0 {
			continue
		}

		singles[strconv.Itoa(rawChannel+1)] = count
	}

	return singles
}

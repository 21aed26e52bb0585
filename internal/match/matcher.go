// Package match locates the first clock tick common to two Streams via a
// delta-signature scan, robust to absolute-time offsets and to jitter
// smaller than one clock period.
package match

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/labtdc/tdcstream/internal/tdcerr"
	"github.com/labtdc/tdcstream/internal/types"
)

// ClockSource is the narrow view of a Stream the matcher needs.
type ClockSource interface {
	CollectClocks() []uint64
}

// Match scans the clock-delta signatures of a and b and returns the anchor
// where their first common clock tick lies. opts.MaxShift and
// opts.TimeDepth tune the scan; zero values fall back to the spec
// defaults (200, 20).
func Match(a, b ClockSource, opts types.Options) (types.Anchor, error) {
	if opts.MaxShift == 0 {
		opts.MaxShift = types.DefaultOptions().MaxShift
	}

	if opts.TimeDepth == 0 {
		opts.TimeDepth = types.DefaultOptions().TimeDepth
	}

	clocksA := a.CollectClocks()
	clocksB := b.CollectClocks()

	deltasA := deltas(clocksA)
	deltasB := deltas(clocksB)

	maxShift := min(opts.MaxShift, len(clocksA)-opts.TimeDepth, len(clocksB)-opts.TimeDepth)
	if maxShift <= 0 || opts.TimeDepth <= 0 {
		return types.Anchor{}, fmt.Errorf(
			"%w: streams too short for time_depth=%d (na=%d, nb=%d)",
			tdcerr.ErrMatch, opts.TimeDepth, len(clocksA), len(clocksB),
		)
	}

	minForward, posForward := maxFloat64, 0
	minBackward, posBackward := maxFloat64, 0

	for shift := range maxShift {
		forward := floats.Distance(deltasA[:opts.TimeDepth], deltasB[shift:shift+opts.TimeDepth], 1)
		if forward < minForward {
			minForward, posForward = forward, shift
		}

		backward := floats.Distance(deltasA[shift:shift+opts.TimeDepth], deltasB[:opts.TimeDepth], 1)
		if backward < minBackward {
			minBackward, posBackward = backward, shift
		}

		if ratio(minBackward, minForward) >= types.MatchThreshold {
			break
		}
	}

	if ratio(minBackward, minForward) < types.MatchThreshold {
		return types.Anchor{}, fmt.Errorf(
			"%w: best forward=%.1f, best backward=%.1f, ratio below threshold %d",
			tdcerr.ErrMatch, minForward, minBackward, types.MatchThreshold,
		)
	}

	if minForward <= minBackward {
		return types.Anchor{MatchingClock: uint64(posForward + 1), BoxToMatch: 2}, nil
	}

	return types.Anchor{MatchingClock: uint64(posBackward + 1), BoxToMatch: 1}, nil
}

const maxFloat64 = 1.7976931348623157e+308

// deltas converts a clock array into its consecutive bin differences, as
// float64 for gonum's distance functions.
func deltas(clocks []uint64) []float64 {
	if len(clocks) == 0 {
		return nil
	}

	out := make([]float64, len(clocks)-1)
	for i := range out {
		out[i] = float64(clocks[i+1]) - float64(clocks[i])
	}

	return out
}

// ratio returns max(x,y)/min(x,y). An exact-zero distance is a decisive
// match, not a degenerate one: a clean or perfectly periodic clock signal
// produces a zero-distance window at its true alignment, and the original
// matcher has no threshold gate at all, it simply takes the position of the
// minimum distance. So either input being zero is reported as the ratio
// clearing MatchThreshold outright rather than as an undefined 0/0.
func ratio(x, y float64) float64 {
	if x == 0 || y == 0 {
		return types.MatchThreshold
	}

	if x > y {
		return x / y
	}

	return y / x
}

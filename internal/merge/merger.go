// Package merge produces a single time-ordered, drift-corrected,
// clock-deduplicated Stream from two Streams and the Anchor a Matcher scan
// found between them.
package merge

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/labtdc/tdcstream/internal/stream"
	"github.com/labtdc/tdcstream/internal/tdcerr"
	"github.com/labtdc/tdcstream/internal/types"
)

// Source is the narrow view of a Stream the merger needs.
type Source interface {
	Size() int
	Timestamp(i int) uint64
	ExternalChannel(i int) uint16
	IsClock(i int) bool
	NumChannels() uint16
	ClockChannel() uint16
	FindNthClock(n int) (int, error)
	CollectClocks() []uint64
}

// Merge resolves the anchor into start indices in both streams, fits a
// linear drift correction from the clock arrays, and performs a single
// merge+filter+cap pass over the (drift-corrected) timestamps.
func Merge(a, b Source, anchor types.Anchor, opts types.Options) (*stream.Stream, error) {
	if opts.MaxFitPoints == 0 {
		opts.MaxFitPoints = types.DefaultOptions().MaxFitPoints
	}

	startA, startB, anchorA, anchorB, err := resolveStarts(a, b, anchor)
	if err != nil {
		return nil, err
	}

	clocksA := a.CollectClocks()
	clocksB := b.CollectClocks()

	normalize(clocksA, anchorA)
	normalize(clocksB, anchorB)

	slope, err := fitDrift(clocksA, clocksB, anchorA, anchorB, opts.MaxFitPoints)
	if err != nil {
		return nil, err
	}

	timestampsA := shifted(a, startA)
	timestampsB := rescaled(shifted(b, startB), slope)

	timestamps, channels := mergeTimestamps(a, b, startA, startB, timestampsA, timestampsB)

	return stream.NewMerged(timestamps, channels, a.NumChannels()+b.NumChannels(), a.ClockChannel()), nil
}

// resolveStarts implements §4.4 step 1: depending on which side the anchor
// was found on, the other side's starting clock is always its very first.
func resolveStarts(a, b Source, anchor types.Anchor) (startA, startB, anchorA, anchorB int, err error) {
	matchingClock := int(anchor.MatchingClock)

	if anchor.BoxToMatch == 1 {
		startA, err = a.FindNthClock(matchingClock)
		if err != nil {
			return 0, 0, 0, 0, err
		}

		startB, err = b.FindNthClock(1)
		if err != nil {
			return 0, 0, 0, 0, err
		}

		return startA, startB, matchingClock - 1, 0, nil
	}

	startA, err = a.FindNthClock(1)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	startB, err = b.FindNthClock(matchingClock)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	return startA, startB, 0, matchingClock - 1, nil
}

// normalize subtracts clocks[anchor] from clocks[anchor:], so the anchor
// sits at time 0.
func normalize(clocks []uint64, anchor int) {
	origin := clocks[anchor]
	for i := anchor; i < len(clocks); i++ {
		clocks[i] -= origin
	}
}

// fitDrift performs the origin-regression of §4.4 step 4: slope = xy/xx
// over up to maxFitPoints matched clock pairs following the anchor.
func fitDrift(clocksA, clocksB []uint64, anchorA, anchorB, maxFitPoints int) (float64, error) {
	kcA := len(clocksA) - anchorA - 1
	kcB := len(clocksB) - anchorB - 1
	common := min(kcA, kcB, maxFitPoints)

	x := make([]float64, 0, common)
	y := make([]float64, 0, common)

	for i := 1; i < common; i++ {
		x = append(x, float64(clocksA[anchorA+i]))
		y = append(y, float64(clocksB[anchorB+i]))
	}

	xx := floats.Dot(x, x)
	if xx == 0 {
		return 0, fmt.Errorf("%w: drift regression has %d usable fit points, xx sum is zero", tdcerr.ErrArithmetic, common)
	}

	return floats.Dot(x, y) / xx, nil
}

// shifted returns timestamp(start+i) - timestamp(start) for i in
// [0, src.Size()-start).
func shifted(src Source, start int) []uint64 {
	out := make([]uint64, src.Size()-start)
	origin := src.Timestamp(start)

	for i := range out {
		out[i] = src.Timestamp(start+i) - origin
	}

	return out
}

// rescaled applies round(ts/slope) to every element — the spec's chosen
// drift-correction rounding (see DESIGN.md for the round-vs-truncate
// divergence between the two source revisions).
func rescaled(timestamps []uint64, slope float64) []uint64 {
	out := make([]uint64, len(timestamps))
	for i, ts := range timestamps {
		out[i] = uint64(math.Round(float64(ts) / slope))
	}

	return out
}

// mergeTimestamps performs the single merge+filter+cap pass of §4.4 step 6:
// B's clock events are skipped, A's are preserved, and the result is
// truncated once a timestamp reaches OneSecBins.
func mergeTimestamps(a, b Source, startA, startB int, timestampsA, timestampsB []uint64) ([]uint64, []uint16) {
	capacity := len(timestampsA) + len(timestampsB)
	timestamps := make([]uint64, 0, capacity)
	channels := make([]uint16, 0, capacity)

	ia, ib := 0, 0

	for ia < len(timestampsA) || ib < len(timestampsB) {
		for ib < len(timestampsB) && b.IsClock(startB+ib) {
			ib++
		}

		var (
			ts      uint64
			channel uint16
		)

		switch {
		case ia >= len(timestampsA):
			if ib >= len(timestampsB) {
				return timestamps, channels
			}

			ts, channel = timestampsB[ib], b.ExternalChannel(startB+ib)-1
			ib++
		case ib >= len(timestampsB):
			ts, channel = timestampsA[ia], a.ExternalChannel(startA+ia)-1
			ia++
		case timestampsA[ia] < timestampsB[ib]:
			ts, channel = timestampsA[ia], a.ExternalChannel(startA+ia)-1
			ia++
		default:
			ts, channel = timestampsB[ib], b.ExternalChannel(startB+ib)-1
			ib++
		}

		timestamps = append(timestamps, ts)
		channels = append(channels, channel)

		if ts >= types.OneSecBins {
			break
		}
	}

	return timestamps, channels
}

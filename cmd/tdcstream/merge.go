package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/labtdc/tdcstream"
	"github.com/labtdc/tdcstream/internal/config"
	"github.com/labtdc/tdcstream/internal/stream"
)

var errMergeArgs = errors.New("provide either --manifest or at least one --input")

func mergeCommand() *cli.Command {
	return &cli.Command{
		Name:      "merge",
		Usage:     "Load, match and chain-merge one or more TDC streams",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "Run manifest YAML file (overrides the flags below)",
			},
			&cli.StringSliceFlag{
				Name:  "input",
				Usage: "Input binary file path, repeatable, one per box in merge order",
			},
			&cli.StringSliceFlag{
				Name:  "clock",
				Usage: "Clock channel for the corresponding --input (1-based: raw channel + 1), repeatable",
			},
			&cli.StringSliceFlag{
				Name:  "box",
				Usage: "Box number for the corresponding --input, repeatable (default: sequential starting at 1)",
			},
			&cli.StringSliceFlag{
				Name:  "offset",
				Usage: "Offset file for the corresponding --input, repeatable (empty string for none)",
			},
			&cli.IntFlag{
				Name:  "max-shift",
				Usage: "Matcher maximum shift",
			},
			&cli.IntFlag{
				Name:  "time-depth",
				Usage: "Matcher delta-signature window length",
			},
			&cli.IntFlag{
				Name:  "max-fit-points",
				Usage: "Merger drift regression point cap",
			},
			&cli.IntFlag{
				Name:  "n",
				Usage: "Coincidence fold count (omit, with --singles/--coincidences unset, to stop at the merged stream)",
			},
			&cli.StringFlag{
				Name:  "window-bins",
				Usage: "Coincidence window width, in bins",
			},
			&cli.StringFlag{
				Name:  "singles",
				Usage: "Singles output path",
			},
			&cli.StringFlag{
				Name:  "coincidences",
				Usage: "Coincidences output path",
			},
			&cli.StringFlag{
				Name:  "print-data",
				Usage: "Write the merged stream's (timestamp, external_channel) pairs to this path",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			specs, offsetPaths, manifest, err := mergeInputs(cmd)
			if err != nil {
				return err
			}

			opts := mergeOptions(cmd, manifest)

			streams, err := stream.LoadMany(specs)
			if err != nil {
				return dispatch(err)
			}

			for i, offsetPath := range offsetPaths {
				if offsetPath == "" {
					continue
				}

				if err := streams[i].ApplyOffset(offsetPath); err != nil {
					return dispatch(err)
				}
			}

			result, err := tdcstream.RunMerge(streams, opts)
			if err != nil {
				return dispatch(err)
			}

			return outputResult(result, cmd.String("format"))
		},
	}
}

// mergeInputs builds LoadSpecs either from a manifest file or from the
// per-input flag slices, which are aligned by position. When a manifest is
// used, it is also returned so mergeOptions can pick up its tuning and
// output fields.
func mergeInputs(cmd *cli.Command) ([]stream.LoadSpec, []string, *config.Manifest, error) {
	if manifestPath := cmd.String("manifest"); manifestPath != "" {
		manifest, err := config.Load(manifestPath)
		if err != nil {
			return nil, nil, nil, err
		}

		specs := make([]stream.LoadSpec, len(manifest.Inputs))
		offsets := make([]string, len(manifest.Inputs))

		for i, in := range manifest.Inputs {
			specs[i] = stream.LoadSpec{Path: in.Path, ClockChannel: in.ClockChannel, BoxNumber: in.BoxNumber}
			offsets[i] = in.OffsetPath
		}

		return specs, offsets, manifest, nil
	}

	paths := cmd.StringSlice("input")
	if len(paths) == 0 {
		return nil, nil, nil, errMergeArgs
	}

	clocks := cmd.StringSlice("clock")
	boxes := cmd.StringSlice("box")
	offsets := cmd.StringSlice("offset")

	specs := make([]stream.LoadSpec, len(paths))
	resolvedOffsets := make([]string, len(paths))

	for i, path := range paths {
		clock, err := uint16At(clocks, i, 0)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parsing --clock at index %d: %w", i, err)
		}

		box, err := uint16At(boxes, i, uint16(i+1)) //nolint:gosec // bounded by input count
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parsing --box at index %d: %w", i, err)
		}

		specs[i] = stream.LoadSpec{Path: path, ClockChannel: clock, BoxNumber: box}

		if i < len(offsets) {
			resolvedOffsets[i] = offsets[i]
		}
	}

	return specs, resolvedOffsets, nil, nil
}

func uint16At(values []string, i int, fallback uint16) (uint16, error) {
	if i >= len(values) || values[i] == "" {
		return fallback, nil
	}

	v, err := strconv.ParseUint(values[i], 10, 16)
	if err != nil {
		return 0, err //nolint:wrapcheck // caller adds context
	}

	return uint16(v), nil
}

// mergeOptions builds the run options, seeded from manifest (when one was
// loaded by mergeInputs) and then overridden by any flag the caller actually
// set. Flags are the sole source when manifest is nil.
func mergeOptions(cmd *cli.Command, manifest *config.Manifest) tdcstream.Options {
	opts := tdcstream.DefaultOptions()

	if manifest != nil {
		if manifest.MaxShift != 0 {
			opts.MaxShift = manifest.MaxShift
		}

		if manifest.TimeDepth != 0 {
			opts.TimeDepth = manifest.TimeDepth
		}

		if manifest.MaxFitPoints != 0 {
			opts.MaxFitPoints = manifest.MaxFitPoints
		}

		opts.N = manifest.N
		opts.WindowBins = manifest.WindowBins
		opts.SinglesPath = manifest.SinglesPath
		opts.CoincidencesPath = manifest.CoincidencesPath
		opts.MergedDataPath = manifest.MergedDataPath
	}

	if v := cmd.Int("max-shift"); v != 0 {
		opts.MaxShift = v
	}

	if v := cmd.Int("time-depth"); v != 0 {
		opts.TimeDepth = v
	}

	if v := cmd.Int("max-fit-points"); v != 0 {
		opts.MaxFitPoints = v
	}

	if v := cmd.Int("n"); v != 0 || manifest == nil {
		opts.N = v
	}

	if v := cmd.String("window-bins"); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			opts.WindowBins = parsed
		}
	}

	if v := cmd.String("singles"); v != "" || manifest == nil {
		opts.SinglesPath = v
	}

	if v := cmd.String("coincidences"); v != "" || manifest == nil {
		opts.CoincidencesPath = v
	}

	if v := cmd.String("print-data"); v != "" || manifest == nil {
		opts.MergedDataPath = v
	}

	return opts
}

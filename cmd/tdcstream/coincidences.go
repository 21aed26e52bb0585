package main

import (
	"context"
	"errors"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/labtdc/tdcstream/internal/stream"
)

var errCoincidencesArgs = errors.New("expected exactly one argument: input file path")

func coincidencesCommand() *cli.Command {
	return &cli.Command{
		Name:      "coincidences",
		Usage:     "Scan a single (possibly already-merged) stream for singles and n-fold coincidences",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "clock",
				Usage: "Clock channel (1-based: raw channel + 1)",
			},
			&cli.IntFlag{
				Name:  "box",
				Usage: "Box number",
				Value: 1,
			},
			&cli.StringFlag{
				Name:  "offset",
				Usage: "Optional channel offset file",
			},
			&cli.IntFlag{
				Name:     "n",
				Usage:    "Coincidence fold count",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "window-bins",
				Usage:    "Coincidence window width, in bins",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "singles",
				Usage:    "Singles output path",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "coincidences",
				Usage:    "Coincidences output path",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: console, json, markdown",
				Value:   "console",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errCoincidencesArgs
			}

			windowBins, err := strconv.ParseUint(cmd.String("window-bins"), 10, 64)
			if err != nil {
				return err //nolint:wrapcheck // cli command actions report errors as-is
			}

			clockChannel := cmd.Int("clock")
			boxNumber := cmd.Int("box")

			src, err := stream.Load(cmd.Args().First(), uint16(clockChannel), uint16(boxNumber)) //nolint:gosec // CLI-supplied small integers
			if err != nil {
				return dispatch(err)
			}

			if offsetPath := cmd.String("offset"); offsetPath != "" {
				if err := src.ApplyOffset(offsetPath); err != nil {
					return dispatch(err)
				}
			}

			coincResult, err := src.FindNFoldCoincidences(cmd.Int("n"), windowBins, cmd.String("singles"), cmd.String("coincidences"))
			if err != nil {
				return dispatch(err)
			}

			return outputCoincidenceResult(src, coincResult, cmd.String("format"))
		},
	}
}

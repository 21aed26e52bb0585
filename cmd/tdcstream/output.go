package main

import (
	"fmt"
	"os"

	"github.com/farcloser/primordium/format"

	"github.com/labtdc/tdcstream"
	"github.com/labtdc/tdcstream/internal/coincidence"
	"github.com/labtdc/tdcstream/internal/output"
)

const sentinelFile = "done.task"

func outputResult(result *tdcstream.Result, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err //nolint:wrapcheck // cli command actions report errors as-is
	}

	data := &format.Data{
		Object: "merged stream",
		Meta:   output.ResultToMap(result),
	}

	if err := formatter.PrintAll([]*format.Data{data}, os.Stdout); err != nil {
		return err //nolint:wrapcheck // cli command actions report errors as-is
	}

	return writeSentinel()
}

// sizer is the narrow view of a Stream outputCoincidenceResult needs.
type sizer interface {
	Size() int
}

func outputCoincidenceResult(src sizer, coincResult *coincidence.Result, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err //nolint:wrapcheck // cli command actions report errors as-is
	}

	data := &format.Data{
		Object: "stream",
		Meta:   output.CoincidenceResultToMap(src.Size(), coincResult),
	}

	if err := formatter.PrintAll([]*format.Data{data}, os.Stdout); err != nil {
		return err //nolint:wrapcheck // cli command actions report errors as-is
	}

	return writeSentinel()
}

// writeSentinel writes the done.task marker a driver leaves behind on
// success, so an external supervisor can poll for completion.
func writeSentinel() error {
	if err := os.WriteFile(sentinelFile, []byte("Task completed.\n"), 0o644); err != nil { //nolint:gosec,mnd // standard marker file permissions
		return fmt.Errorf("writing %s: %w", sentinelFile, err)
	}

	return nil
}

// Package errlog implements the process-wide fatal error sink: on a fatal
// core error, the driver appends one line to error.log and exits non-zero.
package errlog

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lestrrat-go/strftime"
)

const logFileName = "error.log"

// Fatal appends a "<local time %c>::Fatal error::<message>" line to
// error.log, logs the same message to stderr via slog, and exits the
// process with status 1. It does not return.
func Fatal(err error) {
	timestamp, fmtErr := strftime.Format("%c", time.Now())
	if fmtErr != nil {
		timestamp = time.Now().String()
	}

	line := fmt.Sprintf("%s::Fatal error::%s\n", timestamp, err.Error())

	if appendErr := appendLine(logFileName, line); appendErr != nil {
		slog.Error("failed to append to error log", "error", appendErr)
	}

	slog.Error("fatal error", "error", err)
	os.Exit(1)
}

func appendLine(path, line string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec,mnd // standard append-log permissions
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	_, err = file.WriteString(line)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

package main

import (
	"errors"

	"github.com/farcloser/primordium/fault"

	"github.com/labtdc/tdcstream/internal/errlog"
	"github.com/labtdc/tdcstream/internal/tdcerr"
)

// dispatch routes a core pipeline error to the error.log sink (which exits
// the process) and otherwise passes usage errors back to the CLI framework
// unchanged. It never returns when err is a typed core error.
func dispatch(err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		tdcerr.ErrFormat,
		tdcerr.ErrAlloc,
		tdcerr.ErrMatch,
		tdcerr.ErrNotFound,
		tdcerr.ErrArithmetic,
		fault.ErrReadFailure,
	} {
		if errors.Is(err, sentinel) {
			errlog.Fatal(err)
		}
	}

	return err
}

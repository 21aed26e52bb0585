package tests_test

import (
	"testing"

	"github.com/containerd/nerdctl/mod/tigron/expect"
	"github.com/containerd/nerdctl/mod/tigron/test"

	"github.com/labtdc/tdcstream/tests/testutils"
)

func TestMergeCLIArgValidation(t *testing.T) {
	testCase := testutils.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "merge without --manifest or --input fails",
			Command:     test.Command("merge"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "merge with a nonexistent input file fails",
			Command:     test.Command("merge", "--input", "/nonexistent/path/file.bin", "--n", "2", "--window-bins", "50"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
	}

	testCase.Run(t)
}

func TestCoincidencesCLIArgValidation(t *testing.T) {
	testCase := testutils.Setup()

	testCase.SubTests = []*test.Case{
		{
			Description: "coincidences without an input argument fails",
			Command:     test.Command("coincidences", "--n", "2", "--window-bins", "50", "--singles", "s.txt", "--coincidences", "c.txt"),
			Expected:    test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
		{
			Description: "coincidences with a nonexistent input file fails",
			Command: test.Command(
				"coincidences", "/nonexistent/path/file.bin",
				"--n", "2", "--window-bins", "50", "--singles", "s.txt", "--coincidences", "c.txt",
			),
			Expected: test.Expects(expect.ExitCodeGenericFail, nil, nil),
		},
	}

	testCase.Run(t)
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/idilsaglam/ticketboard/internal/ui"
)

// usageError marks failures caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// errReported means the failure was already shown to the user.
var errReported = errors.New("reported")

// Run executes the command line and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return 0
	}
	if !errors.Is(err, errReported) {
		ui.Fail(stderr, err.Error())
	}

	var ue usageError
	if errors.As(err, &ue) || strings.HasPrefix(err.Error(), "unknown command") {
		fmt.Fprintln(stderr, ui.Current().Muted.Render("Run `ticketboard --help` for usage."))
		return 2
	}
	return 1
}

package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/goliatone/go-entityforms/pkg/model"
)

// reporter prints status lines to stderr, coloured unless disabled.
type reporter struct {
	out     io.Writer
	success *color.Color
	warn    *color.Color
	fail    *color.Color
}

func newReporter(out io.Writer, noColor bool) *reporter {
	r := &reporter{
		out:     out,
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow, color.Bold),
		fail:    color.New(color.FgRed, color.Bold),
	}
	if noColor {
		r.success.DisableColor()
		r.warn.DisableColor()
		r.fail.DisableColor()
	}
	return r
}

func (r *reporter) Success(format string, args ...any) {
	r.success.Fprint(r.out, "✓ ")
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *reporter) Warn(format string, args ...any) {
	r.warn.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, format+"\n", args...)
}

// Error prints err; validation errors list one issue per line.
func (r *reporter) Error(err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		r.fail.Fprint(r.out, "✗ ")
		fmt.Fprintln(r.out, "invalid entity")
		for _, issue := range verr.Issues {
			if issue.Path != "" {
				fmt.Fprintf(r.out, "  - %s: %s\n", issue.Path, issue.Message)
				continue
			}
			fmt.Fprintf(r.out, "  - %s\n", issue.Message)
		}
		return
	}
	r.fail.Fprint(r.out, "✗ ")
	fmt.Fprintf(r.out, "%v\n", err)
}

package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"github.com/toyz/routegen/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to out
func NewDiagnosticReporter(out io.Writer, verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{verbose: verbose, out: out}
}

// ReportError reports err, and every error it aggregates, with context and suggestions
func (r *DiagnosticReporter) ReportError(err error) {
	if err == nil {
		return
	}

	failures := []error{err}
	var merr *multierror.Error
	if stderrors.As(err, &merr) {
		failures = merr.WrappedErrors()
	}

	fmt.Fprintf(r.out, "\nERROR: Code Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n")
	for _, failure := range failures {
		fmt.Fprintln(r.out)
		r.reportOne(failure)
	}
	fmt.Fprintln(r.out)
}

func (r *DiagnosticReporter) reportOne(err error) {
	var rerr errors.RoutegenError
	if !stderrors.As(err, &rerr) {
		fmt.Fprintf(r.out, "Message: %s\n", err.Error())
		return
	}

	header := errorTitle(rerr.ErrorCode())
	fmt.Fprintf(r.out, "Type: %s\n", color.New(color.FgRed, color.Bold).Sprint(header))
	fmt.Fprintf(r.out, "%s\n", strings.Repeat("-", len(header)+6))
	fmt.Fprintf(r.out, "Message: %s\n", err.Error())

	if loc := rerr.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n", loc.String())
	}

	if r.verbose {
		r.printContext(rerr.Context())
	}

	if suggestions := rerr.Suggestions(); len(suggestions) > 0 {
		fmt.Fprintf(r.out, "Suggestions:\n")
		for _, suggestion := range suggestions {
			fmt.Fprintf(r.out, "   %s %s\n", color.New(color.FgYellow).Sprint("-"), suggestion)
		}
	}
}

func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	if len(context) == 0 {
		return
	}

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.out, "Context:\n")
	for _, key := range keys {
		value := context[key]
		if names, ok := value.([]string); ok {
			value = strings.Join(names, ", ")
		}
		fmt.Fprintf(r.out, "   %s: %v\n", strings.ToUpper(key[:1])+key[1:], value)
	}
}

// errorTitle converts an error code name like MissingHandler into "Missing Handler"
func errorTitle(code errors.ErrorCode) string {
	name := strings.TrimSuffix(code.String(), "Error")
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

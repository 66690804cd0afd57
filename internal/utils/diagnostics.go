package utils

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// DiagnosticLevel orders how much the CLI prints
type DiagnosticLevel int

const (
	DiagnosticSilent DiagnosticLevel = iota
	DiagnosticError
	DiagnosticWarn
	DiagnosticInfo
	DiagnosticVerbose
	DiagnosticDebug
)

var levelNames = [...]string{"silent", "error", "warn", "info", "verbose", "debug"}

func (l DiagnosticLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// messageStyle is how one kind of tagged message is rendered and where it goes
type messageStyle struct {
	tag    string
	attr   color.Attribute
	level  DiagnosticLevel
	stderr bool
}

var (
	errorStyle   = messageStyle{tag: "ERROR", attr: color.FgRed, level: DiagnosticError, stderr: true}
	warnStyle    = messageStyle{tag: "WARN", attr: color.FgYellow, level: DiagnosticWarn, stderr: true}
	infoStyle    = messageStyle{tag: "INFO", attr: color.FgBlue, level: DiagnosticInfo}
	successStyle = messageStyle{tag: "SUCCESS", attr: color.FgGreen, level: DiagnosticInfo}
	verboseStyle = messageStyle{tag: "VERBOSE", attr: color.FgHiBlack, level: DiagnosticVerbose}
	debugStyle   = messageStyle{tag: "DEBUG", attr: color.FgMagenta, level: DiagnosticDebug}
)

// DiagnosticSystem is the leveled console logger of the CLI. Errors and
// warnings go to the error writer, everything else to the output writer.
type DiagnosticSystem struct {
	level  DiagnosticLevel
	colors bool
	clock  func() time.Time // nil hides timestamps
	out    io.Writer
	errOut io.Writer
	depth  int
}

// NewDiagnosticSystem creates a diagnostic system writing to stdout and stderr.
// Verbose and debug output is timestamped.
func NewDiagnosticSystem(level DiagnosticLevel) *DiagnosticSystem {
	d := &DiagnosticSystem{
		level:  level,
		colors: colorsWanted(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
	if level >= DiagnosticVerbose {
		d.clock = time.Now
	}
	return d
}

// NewQuietDiagnostics only reports errors
func NewQuietDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticError)
}

// NewVerboseDiagnostics reports per-module progress and skipped files
func NewVerboseDiagnostics() *DiagnosticSystem {
	return NewDiagnosticSystem(DiagnosticVerbose)
}

// SetOutput redirects both writers and switches to plain, untimestamped text
func (d *DiagnosticSystem) SetOutput(out, errOut io.Writer) {
	d.out = out
	d.errOut = errOut
	d.colors = false
	d.clock = nil
}

func (d *DiagnosticSystem) Level() DiagnosticLevel {
	return d.level
}

// Enabled reports whether messages of level l are printed
func (d *DiagnosticSystem) Enabled(l DiagnosticLevel) bool {
	return d.level >= l
}

func (d *DiagnosticSystem) Error(format string, args ...interface{}) {
	d.tagged(errorStyle, format, args...)
}

func (d *DiagnosticSystem) Warn(format string, args ...interface{}) {
	d.tagged(warnStyle, format, args...)
}

func (d *DiagnosticSystem) Info(format string, args ...interface{}) {
	d.tagged(infoStyle, format, args...)
}

func (d *DiagnosticSystem) Success(format string, args ...interface{}) {
	d.tagged(successStyle, format, args...)
}

func (d *DiagnosticSystem) Verbose(format string, args ...interface{}) {
	d.tagged(verboseStyle, format, args...)
}

func (d *DiagnosticSystem) Debug(format string, args ...interface{}) {
	d.tagged(debugStyle, format, args...)
}

// Header prints the "routegen: " banner line of a command
func (d *DiagnosticSystem) Header(message string) {
	d.plain(color.FgCyan, "routegen: "+message)
}

// PhaseHeader opens a phase; items printed after it are listed beneath it
func (d *DiagnosticSystem) PhaseHeader(phase string) {
	d.plain(color.FgBlue, phase+":")
}

// PhaseItem prints one completed item of the current phase
func (d *DiagnosticSystem) PhaseItem(format string, args ...interface{}) {
	if d.Enabled(DiagnosticInfo) {
		fmt.Fprintf(d.out, "%s%s %s\n", d.margin(), d.paint(color.FgGreen, "✓"), fmt.Sprintf(format, args...))
	}
}

func (d *DiagnosticSystem) Indent() {
	d.depth++
}

func (d *DiagnosticSystem) Unindent() {
	if d.depth > 0 {
		d.depth--
	}
}

// Stat is one line of a summary
type Stat struct {
	Name  string
	Value interface{}
}

// Summary prints title followed by the stats in the given order
func (d *DiagnosticSystem) Summary(title string, stats ...Stat) {
	if !d.Enabled(DiagnosticInfo) {
		return
	}
	fmt.Fprintf(d.out, "\n%s\n", d.paint(color.FgGreen, title))
	for _, stat := range stats {
		fmt.Fprintf(d.out, "   %s: %v\n", stat.Name, stat.Value)
	}
}

func (d *DiagnosticSystem) tagged(s messageStyle, format string, args ...interface{}) {
	if !d.Enabled(s.level) {
		return
	}

	w := d.out
	if s.stderr {
		w = d.errOut
	}

	var line strings.Builder
	line.WriteString(d.margin())
	if d.clock != nil {
		line.WriteString(d.clock().Format("15:04:05 "))
	}
	fmt.Fprintf(&line, "%s %s\n", d.paint(s.attr, "["+s.tag+"]"), fmt.Sprintf(format, args...))
	io.WriteString(w, line.String())
}

func (d *DiagnosticSystem) plain(attr color.Attribute, text string) {
	if d.Enabled(DiagnosticInfo) {
		fmt.Fprintln(d.out, d.paint(attr, text))
	}
}

func (d *DiagnosticSystem) paint(attr color.Attribute, text string) string {
	if !d.colors {
		return text
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(text)
}

func (d *DiagnosticSystem) margin() string {
	return strings.Repeat("  ", d.depth)
}

// colorsWanted follows NO_COLOR and FORCE_COLOR, then falls back to TERM
func colorsWanted() bool {
	switch {
	case os.Getenv("NO_COLOR") != "":
		return false
	case os.Getenv("FORCE_COLOR") != "":
		return true
	}
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}

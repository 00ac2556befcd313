// Package ui - Terminal user interface
// Coloured CLI output: headers, tables, the estimate summary box and
// history comparisons.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Writer is the UI output destination
type Writer struct {
	out         io.Writer
	noColor     bool
	interactive bool
	verbosity   int
}

// NewWriter creates a UI writer. Colours are disabled on request; spinners
// only animate when out is a terminal.
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	interactive := false
	if f, ok := out.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{
		out:         out,
		noColor:     noColor,
		interactive: interactive,
		verbosity:   1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Out returns the underlying writer
func (w *Writer) Out() io.Writer {
	return w.out
}

// color applies the attributes if colours are enabled
func (w *Writer) color(text string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if w.noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c.Sprint(text)
}

// Print writes a line
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.color("━━━ "+title+" ━━━", color.Bold, color.FgCyan))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.color("▸ "+title, color.Bold))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s%s", w.color("✓ ", color.FgGreen), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println("%s%s", w.color("⚠ ", color.FgYellow), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println("%s%s", w.color("✗ ", color.FgRed), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Println("%s%s", w.color("ℹ ", color.FgBlue), fmt.Sprintf(format, args...))
}

// Debug prints a debug message
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbosity < 2 {
		return
	}
	w.Println("%s", w.color("  "+fmt.Sprintf(format, args...), color.Faint))
}

// Money formats whole currency units with thousands separators
func Money(symbol string, amount int64) string {
	if amount < 0 {
		return "-" + symbol + humanize.Comma(-amount)
	}
	return symbol + humanize.Comma(amount)
}

// Hours formats an hour count with thousands separators
func Hours(h int64) string {
	return humanize.Comma(h) + "h"
}

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
	right   map[int]bool
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		rows:    [][]string{},
		widths:  widths,
		right:   make(map[int]bool),
	}
}

// AlignRight right-aligns the given columns
func (t *Table) AlignRight(columns ...int) *Table {
	for _, c := range columns {
		t.right[c] = true
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) line(cells []string) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		pad := strings.Repeat(" ", t.widths[i]-utf8.RuneCountInString(cell))
		if t.right[i] {
			parts[i] = pad + cell
		} else {
			parts[i] = cell + pad
		}
	}
	return strings.Join(parts, " │ ")
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.color(t.line(t.headers), color.Bold))

	sep := make([]string, len(t.widths))
	for i, w := range t.widths {
		sep[i] = strings.Repeat("─", w)
	}
	t.w.Println("%s", strings.Join(sep, "─┼─"))

	for _, row := range t.rows {
		t.w.Println("%s", t.line(row))
	}
}

// EstimateSummary renders the headline numbers of an estimate
type EstimateSummary struct {
	w             *Writer
	FinalPrice    string
	Size          string
	DurationWeeks int
	TotalEffort   string
	ManDays       string
	Assumptions   int
}

// NewEstimateSummary creates an estimate summary
func (w *Writer) NewEstimateSummary() *EstimateSummary {
	return &EstimateSummary{w: w}
}

// Render prints the estimate summary
func (s *EstimateSummary) Render() {
	s.w.Println("%s", s.w.color("╭─────────────────────────────────────╮", color.Bold))
	s.w.Println("%s%s%s", s.w.color("│", color.Bold),
		s.w.color(fmt.Sprintf("  Final Price: %-22s", s.FinalPrice), color.FgGreen, color.Bold),
		s.w.color("│", color.Bold))
	s.w.Println("%s%s%s", s.w.color("│", color.Bold),
		fmt.Sprintf("  Size:        %-22s", fmt.Sprintf("%s (%d weeks)", s.Size, s.DurationWeeks)),
		s.w.color("│", color.Bold))
	s.w.Println("%s%s%s", s.w.color("│", color.Bold),
		s.w.color(fmt.Sprintf("  Effort:      %-22s", s.TotalEffort+" / "+s.ManDays+" days"), color.Faint),
		s.w.color("│", color.Bold))
	s.w.Println("%s", s.w.color("╰─────────────────────────────────────╯", color.Bold))

	if s.Assumptions > 0 {
		s.w.Println("")
		s.w.Warning("%d assumptions applied", s.Assumptions)
	}
}

// Spinner shows a loading spinner
type Spinner struct {
	w       *Writer
	label   string
	frames  []string
	current int
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner
func (w *Writer) NewSpinner(label string) *Spinner {
	return &Spinner{
		w:      w,
		label:  label,
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start starts the spinner. It does not animate outside a terminal.
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		if !s.w.interactive {
			<-s.stop
			return
		}
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.current = (s.current + 1) % len(s.frames)
				fmt.Fprintf(s.w.out, "\r%s %s", s.w.color(s.frames[s.current], color.FgCyan), s.label)
			}
		}
	}()
}

// Stop stops the spinner
func (s *Spinner) Stop(success bool) {
	close(s.stop)
	<-s.done

	icon := s.w.color("✓", color.FgGreen)
	if !success {
		icon = s.w.color("✗", color.FgRed)
	}
	prefix := ""
	if s.w.interactive {
		prefix = "\r"
	}
	fmt.Fprintf(s.w.out, "%s%s %s\n", prefix, icon, s.label)
}

// EstimateDiff shows the change between two stored estimates
type EstimateDiff struct {
	w            *Writer
	OldLabel     string
	NewLabel     string
	OldPrice     string
	NewPrice     string
	PriceChange  string
	PercentDelta string
	OldEffort    string
	NewEffort    string
	EffortChange string
	OldSize      string
	NewSize      string
	IsIncrease   bool
	CatalogDrift bool
}

// NewEstimateDiff creates a diff view
func (w *Writer) NewEstimateDiff() *EstimateDiff {
	return &EstimateDiff{w: w}
}

// Render prints the diff
func (d *EstimateDiff) Render() {
	d.w.Header("Estimate Changes")
	d.w.Println("  %s → %s", d.OldLabel, d.NewLabel)
	d.w.Println("")

	arrow := d.w.color("→", color.FgYellow)
	d.w.Println("  Effort: %s %s %s (%s)", d.OldEffort, arrow, d.NewEffort, d.EffortChange)
	if d.OldSize != d.NewSize {
		d.w.Println("  Size:   %s %s %s", d.OldSize, arrow, d.w.color(d.NewSize, color.Bold))
	} else {
		d.w.Println("  Size:   %s", d.NewSize)
	}
	d.w.Println("  Price:  %s %s %s", d.OldPrice, arrow, d.NewPrice)

	if d.CatalogDrift {
		d.w.Println("")
		d.w.Warning("catalogue content changed between the two estimates")
	}

	d.w.Println("%s", strings.Repeat("─", 40))
	changeColor := color.FgGreen
	changePrefix := ""
	if d.IsIncrease {
		changeColor = color.FgRed
		changePrefix = "+"
	}
	d.w.Println("%s%s", d.w.color("Total Change: ", color.Bold),
		d.w.color(fmt.Sprintf("%s%s (%s%s%%)", changePrefix, d.PriceChange, changePrefix, d.PercentDelta), changeColor))
}

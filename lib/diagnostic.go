package lib

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// DiagnosticPrinter writes build failures in a human readable form:
//
//	error[InvalidOperator]: expected '+', '-', '*' or '/' but got number 3
//	  --> main.ph:1:6 (offset 5)
//	   |
//	 1 | (9 % 3)
//	   |      ^
//	   = expected: '(' number operator number ')'
//	   = note: unrecognized character "%" at 1:4 (offset 3) was skipped
type DiagnosticPrinter struct {
	w      io.Writer
	errorC *color.Color
	arrowC *color.Color
	caretC *color.Color
	noteC  *color.Color
}

func NewDiagnosticPrinter(w io.Writer, enableColor bool) *DiagnosticPrinter {
	d := &DiagnosticPrinter{
		w:      w,
		errorC: color.New(color.FgRed, color.Bold),
		arrowC: color.New(color.FgBlue, color.Bold),
		caretC: color.New(color.FgRed),
		noteC:  color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{d.errorC, d.arrowC, d.caretC, d.noteC} {
		if enableColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return d
}

// Print reports err for file. src is the file's contents and may be empty if
// the file could not be read.
func (d *DiagnosticPrinter) Print(file string, src string, err error) {
	syntaxErr, ok := AsSyntaxError(err)
	if !ok {
		fmt.Fprintf(d.w, "%s: %s\n", d.errorC.Sprint("error"), err)
		return
	}

	loc := syntaxErr.Location
	fmt.Fprintf(d.w, "%s: %s\n", d.errorC.Sprintf("error[%s]", syntaxErr.Kind), syntaxErr.Message)
	fmt.Fprintf(d.w, "  %s %s:%s (offset %d)\n", d.arrowC.Sprint("-->"), file, loc, loc.Offset)

	if line, ok := sourceLine(src, loc.Line); ok {
		gutter := fmt.Sprintf("%d", loc.Line)
		pad := strings.Repeat(" ", len(gutter))
		fmt.Fprintf(d.w, " %s %s\n", pad, d.arrowC.Sprint("|"))
		fmt.Fprintf(d.w, " %s %s %s\n", d.arrowC.Sprint(gutter), d.arrowC.Sprint("|"), line)
		fmt.Fprintf(d.w, " %s %s %s%s\n", pad, d.arrowC.Sprint("|"), caretIndent(line, loc.Col), d.caretC.Sprint("^"))
	}

	fmt.Fprintf(d.w, "   %s expected: %s\n", d.noteC.Sprint("="), ExpectedShape)
	if skipped := syntaxErr.Skipped; skipped != nil {
		fmt.Fprintf(d.w, "   %s note: unrecognized character %q at %s (offset %d) was skipped\n",
			d.noteC.Sprint("="), string(skipped.Raw), skipped.Location, skipped.Location.Offset)
	}
}

func sourceLine(src string, line int) (string, bool) {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}

// caretIndent keeps tabs so the caret lines up under col in a terminal.
func caretIndent(line string, col int) string {
	var b strings.Builder
	i := 1
	for _, ch := range line {
		if i >= col {
			break
		}
		if ch == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		i++
	}
	for ; i < col; i++ {
		b.WriteRune(' ')
	}
	return b.String()
}

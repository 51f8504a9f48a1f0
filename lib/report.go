package lib

import (
	"io"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// DefaultReportFormat prints one line per built file.
const DefaultReportFormat = "{{.File}}: {{.Expression}}\n"

type reportViewModel struct {
	File       string
	Expression string
	Left       string
	Operator   string
	Right      string
	Tokens     int
	Skipped    int
}

// Reporter renders successful builds through a text/template.
type Reporter struct {
	tmpl *template.Template
}

func NewReporter(format string) (*Reporter, error) {
	if format == "" {
		format = DefaultReportFormat
	}
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	tmpl, err := template.New("report").Option("missingkey=error").Parse(format)
	if err != nil {
		return nil, errors.Wrap(err, "parsing report format")
	}
	return &Reporter{tmpl: tmpl}, nil
}

// Write renders every result that built. Failed results are left to the
// diagnostic printer.
func (r *Reporter) Write(w io.Writer, results []Result) error {
	for _, result := range results {
		if !result.OK() {
			continue
		}
		if err := r.tmpl.Execute(w, newReportViewModel(result)); err != nil {
			return errors.Wrapf(err, "rendering report for %s", result.File)
		}
	}
	return nil
}

func newReportViewModel(result Result) reportViewModel {
	expr := result.Expression
	return reportViewModel{
		File:       result.File,
		Expression: expr.String(),
		Left:       operandString(expr.Left),
		Operator:   expr.Operator.String(),
		Right:      operandString(expr.Right),
		Tokens:     len(result.Tokens),
		Skipped:    len(result.Skipped),
	}
}

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/covdiff/internal/report"
)

// Writer writes a comparison result in a specific format.
type Writer interface {
	Write(w io.Writer, r *report.Result) error
}

// Formats lists the supported output format names.
var Formats = []string{"markdown", "text", "json", "terminal"}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "terminal":
		return &TerminalWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteResult writes the result to the specified output (file path or stdout).
func WriteResult(r *report.Result, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	if outPath == "" {
		return writer.Write(os.Stdout, r)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	return writeAndClose(f, writer, r)
}

// writeAndClose writes r to wc and reports a failed close when the write
// itself succeeded.
func writeAndClose(wc io.WriteCloser, writer Writer, r *report.Result) (err error) {
	defer func() {
		if cerr := wc.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()
	return writer.Write(wc, r)
}

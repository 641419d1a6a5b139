package cmd

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/gaurav-prasanna/linkpipe/core"
	"github.com/gaurav-prasanna/linkpipe/core/render"
)

// formatFlags selects the renderer and destination of a command's output.
type formatFlags struct {
	json     bool
	markdown bool
	pdf      bool
	stdout   bool
}

func (f *formatFlags) register(flags *pflag.FlagSet) {
	flags.BoolVar(&f.json, "json", false, "Output JSON (default)")
	flags.BoolVar(&f.markdown, "markdown", false, "Output a Markdown preview card")
	flags.BoolVar(&f.pdf, "pdf", false, "Output a PDF preview card")
	flags.BoolVar(&f.stdout, "stdout", false, "Write to stdout instead of files")
}

// renderer returns the selected renderer. At most one format may be set;
// JSON is used when none is.
func (f *formatFlags) renderer() (core.Renderer, error) {
	count := 0
	for _, set := range []bool{f.json, f.markdown, f.pdf} {
		if set {
			count++
		}
	}
	if count > 1 {
		return nil, fmt.Errorf("only one output format allowed per run (got %d)", count)
	}
	if f.pdf && f.stdout {
		return nil, fmt.Errorf("--pdf cannot be combined with --stdout")
	}

	switch {
	case f.markdown:
		return render.NewMarkdownRenderer(), nil
	case f.pdf:
		return render.NewPDFRenderer(), nil
	default:
		return render.NewJSONRenderer(), nil
	}
}

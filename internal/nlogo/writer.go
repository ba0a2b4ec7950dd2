package nlogo

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Header lines NetLogo headless expects at the top of a setup file.
const (
	xmlDeclaration = `<?xml version="1.0" encoding="us-ascii"?>`
	docType        = `<!DOCTYPE experiments SYSTEM "behaviorspace.dtd">`
)

// WriteExperiment writes a single experiment wrapped in an <experiments>
// element, with the XML declaration and DOCTYPE line recognized by
// netlogo-headless.
func WriteExperiment(w io.Writer, exp *Experiment) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n<experiments>\n", xmlDeclaration, docType); err != nil {
		return err
	}

	body, err := xml.MarshalIndent(exp, "  ", "  ")
	if err != nil {
		return fmt.Errorf("marshal experiment %q: %w", exp.Name, err)
	}
	if _, err := w.Write(body); err != nil {
		return err
	}

	if _, err := io.WriteString(w, "\n</experiments>\n"); err != nil {
		return err
	}
	return nil
}

// Package nlogo reads NetLogo model files and decodes the BehaviorSpace
// experiment definitions embedded in them.
//
// A .nlogo file is mostly non-XML (code, interface, shapes, ...). The
// BehaviorSpace section is the only XML payload, delimited by an
// <experiments> element, so the reader scans for those blocks instead of
// parsing the whole file.
package nlogo

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrExperimentNotFound is returned when a named experiment does not exist
// in the model file.
var ErrExperimentNotFound = errors.New("experiment not found")

const (
	openTag  = "<experiments>"
	closeTag = "</experiments>"
)

// Model is a NetLogo model file reduced to its BehaviorSpace content.
type Model struct {
	// Path is the model file path as given to ReadModel.
	Path string
	// Experiments are all experiments found, in file order.
	Experiments []Experiment
}

// experimentsDoc is the decoding container for one <experiments> block.
type experimentsDoc struct {
	XMLName     xml.Name     `xml:"experiments"`
	Experiments []Experiment `xml:"experiment"`
}

// ReadModel reads a .nlogo file and decodes every BehaviorSpace experiment
// in it. A model without a BehaviorSpace section yields an empty model.
func ReadModel(path string) (*Model, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	return ParseModel(path, string(content))
}

// ParseModel decodes BehaviorSpace experiments from raw model file content.
func ParseModel(path, content string) (*Model, error) {
	m := &Model{Path: path}

	for _, block := range extractExperimentBlocks(content) {
		var doc experimentsDoc
		dec := xml.NewDecoder(strings.NewReader(block))
		dec.Strict = true
		// No entity expansion; model files never need it.
		dec.Entity = map[string]string{}
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode experiments in %s: %w", path, err)
		}
		m.Experiments = append(m.Experiments, doc.Experiments...)
	}

	return m, nil
}

// extractExperimentBlocks returns each <experiments>...</experiments> block
// found in the content. Everything outside the tags is ignored.
func extractExperimentBlocks(content string) []string {
	var blocks []string
	parts := strings.Split(content, openTag)
	for _, part := range parts[1:] {
		inner, _, ok := strings.Cut(part, closeTag)
		if !ok {
			continue
		}
		blocks = append(blocks, openTag+inner+closeTag)
	}
	return blocks
}

// Experiment returns the experiment with the given name.
func (m *Model) Experiment(name string) (*Experiment, error) {
	for i := range m.Experiments {
		if m.Experiments[i].Name == name {
			return &m.Experiments[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrExperimentNotFound, name, m.Path)
}

// Names returns the experiment names in file order.
func (m *Model) Names() []string {
	names := make([]string, len(m.Experiments))
	for i := range m.Experiments {
		names[i] = m.Experiments[i].Name
	}
	return names
}

// Package script renders array-job script files from user templates.
//
// Templates are plain text with {key} placeholders. Doubled braces escape
// a literal brace. Placeholders with no matching key are kept verbatim so a
// template can pass scheduler syntax (e.g. ${PBS_ARRAY_INDEX}) through
// untouched, but each unknown key is reported once as a warning.
package script

import (
	"fmt"
	"sort"
	"strings"
)

// Template is a parsed script template.
type Template struct {
	segments []segment
}

type segmentKind int

const (
	segText segmentKind = iota
	segField
)

type segment struct {
	kind segmentKind
	// text content for segText, field name for segField
	value string
	// raw placeholder including braces, kept for unknown-key passthrough
	raw string
}

// Parse scans a template into literal text and placeholder segments.
// An unterminated placeholder is an error.
func Parse(input string) (*Template, error) {
	t := &Template{}
	var text strings.Builder

	for i := 0; i < len(input); {
		c := input[i]
		switch {
		case c == '{' && i+1 < len(input) && input[i+1] == '{':
			text.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(input) && input[i+1] == '}':
			text.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(input[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated placeholder at offset %d", i)
			}
			raw := input[i : i+end+1]
			name := raw[1 : len(raw)-1]
			// Strip a format spec or conversion; only the field name is used.
			if cut := strings.IndexAny(name, ":!"); cut >= 0 {
				name = name[:cut]
			}
			if text.Len() > 0 {
				t.segments = append(t.segments, segment{kind: segText, value: text.String()})
				text.Reset()
			}
			t.segments = append(t.segments, segment{kind: segField, value: name, raw: raw})
			i += end + 1
		case c == '}':
			return nil, fmt.Errorf("single '}' at offset %d", i)
		default:
			text.WriteByte(c)
			i++
		}
	}
	if text.Len() > 0 {
		t.segments = append(t.segments, segment{kind: segText, value: text.String()})
	}

	return t, nil
}

// Fields returns the distinct placeholder names, sorted.
func (t *Template) Fields() []string {
	seen := map[string]bool{}
	for _, s := range t.segments {
		if s.kind == segField {
			seen[s.value] = true
		}
	}
	fields := make([]string, 0, len(seen))
	for f := range seen {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Render substitutes vars into the template. Placeholders without a
// matching key are emitted verbatim; their names are returned as warnings
// (deduplicated, in order of first appearance).
func (t *Template) Render(vars map[string]string) (string, []string) {
	var out strings.Builder
	var unknown []string
	warned := map[string]bool{}

	for _, s := range t.segments {
		switch s.kind {
		case segText:
			out.WriteString(s.value)
		case segField:
			if v, ok := vars[s.value]; ok {
				out.WriteString(v)
				continue
			}
			out.WriteString(s.raw)
			if !warned[s.value] {
				warned[s.value] = true
				unknown = append(unknown, s.value)
			}
		}
	}

	return out.String(), unknown
}

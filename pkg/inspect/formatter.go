package inspect

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowMetadata includes type, bType and functional constraint
	ShowMetadata bool

	// ShowMissing lists data members without an override in the document
	ShowMissing bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowMetadata: true,
		ShowMissing:  true,
		IndentWidth:  2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// FormatNode formats one tree node line without children.
func (f *Formatter) FormatNode(n *TreeNode) string {
	var sb strings.Builder
	sb.WriteString(n.Title)

	if f.ShowMetadata {
		var meta []string
		for _, m := range []string{n.Kind, n.Type, n.BType, n.FC} {
			if m != "" {
				meta = append(meta, m)
			}
		}
		if len(meta) > 0 {
			sb.WriteString(" [")
			sb.WriteString(strings.Join(meta, " "))
			sb.WriteString("]")
		}
	}

	switch {
	case len(n.Values) > 0:
		sb.WriteString(" = ")
		sb.WriteString(strings.Join(n.Values, ", "))
	case len(n.Defaults) > 0:
		sb.WriteString(" = ")
		sb.WriteString(strings.Join(n.Defaults, ", "))
		sb.WriteString(" (default)")
	}
	if n.Missing && len(n.Children) == 0 && len(n.Values) == 0 {
		sb.WriteString(" (not instantiated)")
	}
	return sb.String()
}

// FormatTree writes the tree as indented text.
func (f *Formatter) FormatTree(w io.Writer, nodes []*TreeNode) error {
	return f.formatTree(w, nodes, 0)
}

func (f *Formatter) formatTree(w io.Writer, nodes []*TreeNode, depth int) error {
	for _, n := range nodes {
		if n.Missing && !f.ShowMissing {
			continue
		}
		if _, err := fmt.Fprintln(w, f.Indent(depth, f.FormatNode(n))); err != nil {
			return err
		}
		if err := f.formatTree(w, n.Children, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// FormatTypes writes a catalogue listing as indented text.
func (f *Formatter) FormatTypes(w io.Writer, types []TypeInfo) error {
	if len(types) == 0 {
		_, err := fmt.Fprintln(w, f.Indent(1, "(no definitions)"))
		return err
	}
	for _, t := range types {
		line := t.ID + " (" + t.Kind
		if t.Class != "" {
			line += " " + t.Class
		}
		line += ")"
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		for _, m := range t.Members {
			if _, err := fmt.Fprintln(w, f.Indent(1, m)); err != nil {
				return err
			}
		}
	}
	return nil
}

// FormatYAML writes v (a tree or type listing) as a YAML document.
func FormatYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// FormatEntry formats a located data entry for display.
func (f *Formatter) FormatEntry(t Target) string {
	if t.Entry == nil {
		return ""
	}
	e := t.Entry
	n := &TreeNode{
		Title:   e.Name,
		Kind:    e.Member.String(),
		Type:    e.Type,
		BType:   e.BType,
		FC:      e.FC,
		Missing: !e.Instantiated(),
	}
	for _, v := range e.Values {
		n.Values = append(n.Values, v.Display())
	}
	for _, v := range e.Defaults {
		n.Defaults = append(n.Defaults, v.Display())
	}
	line := f.FormatNode(n)
	if len(e.EnumValues) > 0 {
		line += "\n" + f.Indent(1, "enum: "+strings.Join(e.EnumValues, ", "))
	}
	return line
}

package scl

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Decoding errors.
var (
	ErrNoRoot        = errors.New("document has no root element")
	ErrUnbalancedXML = errors.New("unbalanced element nesting")
)

// Decode parses an SCL XML document into an arena.
// Namespace prefixes are kept verbatim; comments and processing
// instructions are dropped.
func Decode(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	doc := NewDocument()

	var stack []Handle
	var text []*strings.Builder

	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode scl: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make([]Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				attrs = append(attrs, Attr{Name: qualified(a.Name), Value: a.Value})
			}
			var h Handle
			if len(stack) == 0 {
				if doc.root != NoHandle {
					return nil, fmt.Errorf("decode scl: second root element %q", qualified(t.Name))
				}
				h = doc.SetRoot(qualified(t.Name), attrs...)
			} else {
				h = doc.AppendChild(stack[len(stack)-1], qualified(t.Name), attrs...)
			}
			stack = append(stack, h)
			text = append(text, &strings.Builder{})

		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, ErrUnbalancedXML
			}
			h := stack[len(stack)-1]
			if doc.Name(h) != qualified(t.Name) {
				return nil, fmt.Errorf("%w: %s closed by %s", ErrUnbalancedXML, doc.Name(h), qualified(t.Name))
			}
			doc.SetText(h, strings.TrimSpace(text[len(text)-1].String()))
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}

	if len(stack) != 0 {
		return nil, ErrUnbalancedXML
	}
	if doc.root == NoHandle {
		return nil, ErrNoRoot
	}
	return doc, nil
}

// Encode writes the document as indented XML with an XML declaration.
func Encode(w io.Writer, d *Document) error {
	if d.root == NoHandle {
		return ErrNoRoot
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	if err := d.encode(enc, d.root); err != nil {
		return fmt.Errorf("encode scl: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (d *Document) encode(enc *xml.Encoder, h Handle) error {
	n := &d.nodes[h]
	start := xml.StartElement{Name: xml.Name{Local: n.name}}
	for _, a := range n.attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if n.text != "" {
		if err := enc.EncodeToken(xml.CharData(n.text)); err != nil {
			return err
		}
	}
	for _, c := range n.children {
		if err := d.encode(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

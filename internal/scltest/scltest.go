// Package scltest provides document fixtures shared by package tests.
package scltest

import (
	"bytes"
	_ "embed"
	"strings"
	"testing"

	"github.com/scl-tools/iedit-go/pkg/scl"
)

//go:embed testdata/sample.scd
var sample []byte

// SampleBytes returns the raw sample document.
func SampleBytes() []byte {
	return bytes.Clone(sample)
}

// Sample decodes the sample document: IED1 with a populated LN0 and XCBR,
// a server-less AP2, an empty IED0, and a catalogue with one struct DAType
// and three enum types.
func Sample(t testing.TB) *scl.Document {
	t.Helper()
	doc, err := scl.Decode(bytes.NewReader(sample))
	if err != nil {
		t.Fatalf("decode sample: %v", err)
	}
	return doc
}

// Parse decodes an inline document.
func Parse(t testing.TB, xml string) *scl.Document {
	t.Helper()
	doc, err := scl.Decode(strings.NewReader(xml))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return doc
}

// MustFind walks a slash separated chain of name-like attributes starting at
// the root and fails the test if any step is missing. Each step matches the
// first child whose name, inst or lnClass attribute equals the segment, or
// whose tag name equals it (for unnamed elements like Server).
func MustFind(t testing.TB, doc *scl.Document, path string) scl.Handle {
	t.Helper()
	h := doc.Root()
	for _, seg := range strings.Split(path, "/") {
		next := scl.NoHandle
		for _, c := range doc.Children(h) {
			if doc.Get(c, "name") == seg || doc.Get(c, "inst") == seg && seg != "" ||
				doc.Get(c, "lnClass") == seg || doc.Get(c, "id") == seg || doc.Name(c) == seg {
				next = c
				break
			}
		}
		if next == scl.NoHandle {
			t.Fatalf("path %q: segment %q not found", path, seg)
		}
		h = next
	}
	return h
}

// Package naming provides the display titles and identifier validation used
// across the editor.
package naming

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/scl-tools/iedit-go/pkg/scl"
)

// Rule constrains a user-entered identifier.
// A nil Pattern accepts any characters; a zero MaxLength is unbounded.
type Rule struct {
	Pattern   *regexp.Regexp
	MaxLength int
}

// Rules for the identifiers the synthesizer asks for.
var (
	AccessPointRule = Rule{
		Pattern:   regexp.MustCompile(`^[A-Za-z0-9][0-9A-Za-z_]*$`),
		MaxLength: 32,
	}
	DeviceRule = Rule{
		Pattern:   regexp.MustCompile(`^\S+$`),
		MaxLength: 64,
	}
	LDeviceRule = Rule{
		Pattern:   regexp.MustCompile(`^[A-Za-z0-9][0-9A-Za-z_]*$`),
		MaxLength: 64,
	}
)

// Result is the outcome of validating a candidate name.
// At most one problem is reported, in declaration order of priority.
type Result uint8

const (
	OK Result = iota
	Empty
	InvalidCharacters
	TooLong
	Duplicate
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case OK:
		return "OK"
	case Empty:
		return "EMPTY"
	case InvalidCharacters:
		return "INVALID_CHARACTERS"
	case TooLong:
		return "TOO_LONG"
	case Duplicate:
		return "DUPLICATE"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether the candidate passed.
func (r Result) Valid() bool {
	return r == OK
}

// Message returns the inline hint shown next to the input.
// Empty input is untouched input and shows nothing.
func (r Result) Message(rule Rule) string {
	switch r {
	case InvalidCharacters:
		return "name contains invalid characters"
	case TooLong:
		if rule.MaxLength > 0 {
			return "name must be at most " + strconv.Itoa(rule.MaxLength) + " characters"
		}
		return "name is too long"
	case Duplicate:
		return "name already exists"
	default:
		return ""
	}
}

// IsNameUnique reports whether candidate does not equal any sibling name.
// The comparison is exact and case-sensitive.
func IsNameUnique(siblings []string, candidate string) bool {
	return !slices.Contains(siblings, candidate)
}

// Validate checks the trimmed candidate against rule and siblings.
func Validate(candidate string, rule Rule, siblings []string) Result {
	name := strings.TrimSpace(candidate)
	switch {
	case name == "":
		return Empty
	case rule.Pattern != nil && !rule.Pattern.MatchString(name):
		return InvalidCharacters
	case rule.MaxLength > 0 && utf8.RuneCountInString(name) > rule.MaxLength:
		return TooLong
	case !IsNameUnique(siblings, name):
		return Duplicate
	}
	return OK
}

type titleFunc func(doc *scl.Document, h scl.Handle) string

var titleRules = map[scl.InstanceKind]titleFunc{
	scl.InstanceRootLogicalNode: attrTitle("lnClass"),
	scl.InstanceLogicalNode:     attrTitle("lnClass"),
	scl.InstanceLogicalDevice: func(doc *scl.Document, h scl.Handle) string {
		if name, ok := doc.Attr(h, "name"); ok {
			return name
		}
		return doc.Get(h, "inst")
	},
	scl.InstanceServer: func(*scl.Document, scl.Handle) string { return "Server" },
}

// Title returns the display title of an instance node: the class code for
// logical nodes, name or inst for logical devices, "Server" for servers and
// the name attribute for everything else.
func Title(doc *scl.Document, h scl.Handle) string {
	if rule, ok := titleRules[doc.Tag(h).InstanceKind()]; ok {
		return rule(doc, h)
	}
	return doc.Get(h, "name")
}

// Path returns the titles of the ancestors of h from the device down,
// followed by the title of h itself. Nodes above the device (the document
// root) are not part of the path.
func Path(doc *scl.Document, h scl.Handle) []string {
	var titles []string
	for _, a := range doc.Ancestors(h) {
		if doc.Tag(a).InstanceKind() == scl.InstanceNone {
			continue
		}
		titles = append(titles, Title(doc, a))
	}
	return append(titles, Title(doc, h))
}

func attrTitle(attr string) titleFunc {
	return func(doc *scl.Document, h scl.Handle) string {
		return doc.Get(h, attr)
	}
}

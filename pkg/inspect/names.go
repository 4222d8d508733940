package inspect

import (
	"strings"

	"github.com/scl-tools/iedit-go/pkg/scl"
)

// kindNames maps the names accepted on the command line to definition kinds.
var kindNames = map[string]scl.DefinitionKind{
	"lnodetype": scl.DefinitionNodeType,
	"dotype":    scl.DefinitionObjectType,
	"datype":    scl.DefinitionAttributeType,
	"enumtype":  scl.DefinitionEnumType,
}

// ResolveKindName resolves a definition kind name (case-insensitive).
func ResolveKindName(name string) (scl.DefinitionKind, bool) {
	k, ok := kindNames[strings.ToLower(name)]
	return k, ok
}

// KindNames returns the accepted kind names in catalogue order.
func KindNames() []string {
	return []string{"lnodetype", "dotype", "datype", "enumtype"}
}

// LNName returns the reference name of a logical node: prefix, class and
// instance concatenated.
func LNName(doc *scl.Document, ln scl.Handle) string {
	return doc.Get(ln, "prefix") + doc.Get(ln, "lnClass") + doc.Get(ln, "inst")
}

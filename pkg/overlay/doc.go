// Package overlay projects catalogue type definitions onto logical node
// instances.
//
// For a logical node, the resolver walks the node type named by lnType and
// pairs each declared member with the override element of the same name, if
// any, found directly under the instance:
//
//	LNodeType XCBR_T                 LN XCBR
//	├── DO Pos (DPC_Pos)      <->    └── DOI Pos
//	│   ├── DA origin (Struct) <->       ├── SDI origin
//	│   │   └── BDA orCat      <->       │   └── DAI orCat ── Val
//	│   └── DA ctlModel        <->       └── DAI ctlModel ── Val sGroup=1..n
//	└── DO Beh (ENS_Beh)      <->    (no override)
//
// Which override element is searched for depends only on the member kind and
// on whether the member is composite, never on the instance data:
//
//	DO                 -> DOI  (composite, expands an ObjectType)
//	SDO                -> SDI  (composite, expands an ObjectType)
//	DA/BDA bType=Struct -> SDI (composite, expands an AttributeType)
//	DA/BDA otherwise   -> DAI  (terminal, carries Val elements)
//
// Ordering always follows the catalogue declaration order. Dangling type
// references, missing overrides and cyclic catalogues are not errors; the
// affected branch simply has no children.
package overlay

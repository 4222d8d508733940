// Package scl implements the document model of substation configuration files.
//
// # Two Trees, One Document
//
// An SCL document holds two parallel trees:
//
//	SCL
//	├── IED (device)                       instance tree
//	│   └── AccessPoint
//	│       └── Server
//	│           └── LDevice
//	│               ├── LN0 ── DOI ── SDI ── DAI ── Val
//	│               └── LN
//	└── DataTypeTemplates                  definition catalogue
//	    ├── LNodeType ── DO
//	    ├── DOType ── SDO, DA
//	    ├── DAType ── BDA
//	    └── EnumType ── EnumVal
//
// Instance nodes reference catalogue definitions by plain string id
// (lnType, type). Override nodes (DOI/SDI/DAI) below a logical node record
// concrete values for the definition children they are named after.
//
// # Arena
//
// A Document is an arena of nodes addressed by Handle. Every accessor takes
// a handle and tolerates invalid ones, so traversal code never dereferences
// shared pointers. Element variants are a closed Tag enum; a single table
// maps each tag to its InstanceKind, DefinitionKind or MemberKind.
//
// Engine code treats a Document as an immutable snapshot. Edits are applied
// by the host to a Clone, producing the next snapshot.
package scl

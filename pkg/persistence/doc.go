// Package persistence stores plugin state between editor sessions.
//
// The host keeps one small JSON file with a state entry per plugin. A plugin
// reads its entry once when it is attached and writes it back once when it
// is detached. Missing files and missing entries are not errors; they read
// as absent state.
package persistence

// Command iedit inspects and extends SCL substation configuration documents.
//
// Usage:
//
//	iedit <command> [flags] <file.scd>
//
// Commands:
//
//	tree      Show the device tree with resolved data under every logical node
//	types     List the data type templates
//	add-ied   Add a virtual device
//	add-ap    Add an access point to a device
//	add-ld    Add a logical device to an access point's server
//	add-ln    Add logical nodes to a logical device
//	journal   View an edit journal
//	shell     Start the interactive editor
//
// Examples:
//
//	# Show IED1 with only circuit breaker nodes
//	iedit tree --device IED1 --lnclass XCBR station.scd
//
//	# Add a device and write the result to a new file
//	iedit add-ied -o out.scd station.scd IED2
//
//	# Record a journal while editing interactively
//	iedit shell --journal session.ijl station.scd
//	iedit journal --category EDIT session.ijl
package main

import (
	"os"

	"github.com/scl-tools/iedit-go/cmd/iedit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

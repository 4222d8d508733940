package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scl-tools/iedit-go/pkg/inspect"
	"github.com/scl-tools/iedit-go/pkg/plugin"
	"github.com/scl-tools/iedit-go/pkg/scl"
)

var treeCmd = &cobra.Command{
	Use:   "tree [flags] <file.scd>",
	Short: "Show the device tree with resolved data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		devices, _ := cmd.Flags().GetStringSlice("device")
		classes, _ := cmd.Flags().GetStringSlice("lnclass")
		hide, _ := cmd.Flags().GetBool("hide-missing")

		s, err := OpenSession(cfg, args[0], os.Stderr)
		if err != nil {
			return err
		}
		defer s.Close()

		return RunTree(s.Engine, cmd.OutOrStdout(), TreeOptions{
			Devices:     devices,
			LNClasses:   classes,
			Output:      cfg.Output,
			HideMissing: hide,
		})
	},
}

var typesCmd = &cobra.Command{
	Use:   "types [flags] <file.scd>",
	Short: "List the data type templates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		kindName, _ := cmd.Flags().GetString("kind")

		doc, err := readDocument(args[0])
		if err != nil {
			return err
		}
		return RunTypes(doc, cmd.OutOrStdout(), kindName, cfg.Output)
	},
}

func init() {
	treeCmd.Flags().StringSlice("device", nil, "devices to show (default: stored selection or first device)")
	treeCmd.Flags().StringSlice("lnclass", nil, "show only logical nodes of these classes")
	treeCmd.Flags().Bool("hide-missing", false, "hide data without an instance override")
	typesCmd.Flags().String("kind", "", "definition kind (lnodetype, dotype, datype, enumtype)")
}

// TreeOptions controls RunTree.
type TreeOptions struct {
	Devices     []string
	LNClasses   []string
	Output      string
	HideMissing bool
}

// RunTree selects devices and classes on the engine and prints its tree.
// Without requested devices the current selection is shown, or the first
// device when nothing is selected.
func RunTree(eng *plugin.Engine, w io.Writer, opts TreeOptions) error {
	switch {
	case len(opts.Devices) > 0:
		if err := eng.Select(opts.Devices...); err != nil {
			return err
		}
		if len(eng.Selected()) == 0 {
			return fmt.Errorf("no such device: %v", opts.Devices)
		}
	case len(eng.Selected()) == 0:
		if names := eng.DeviceNames(); len(names) > 0 {
			if err := eng.Select(names[0]); err != nil {
				return err
			}
		}
	}
	if err := eng.SetLNClassFilter(opts.LNClasses...); err != nil {
		return err
	}

	tree := eng.Tree()
	if opts.Output == "yaml" {
		return inspect.FormatYAML(w, tree)
	}
	f := inspect.NewFormatter()
	f.ShowMissing = !opts.HideMissing
	return f.FormatTree(w, tree)
}

// RunTypes prints the catalogue definitions of one kind, or all of them
// when kindName is empty.
func RunTypes(doc *scl.Document, w io.Writer, kindName, output string) error {
	kind := scl.DefinitionNone
	if kindName != "" {
		k, ok := inspect.ResolveKindName(kindName)
		if !ok {
			return fmt.Errorf("unknown kind %q (want one of %v)", kindName, inspect.KindNames())
		}
		kind = k
	}

	types := inspect.NewInspector(doc).Types(kind)
	if output == "yaml" {
		return inspect.FormatYAML(w, types)
	}
	return inspect.NewFormatter().FormatTypes(w, types)
}

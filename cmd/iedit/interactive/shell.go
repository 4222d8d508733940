// Package interactive provides the interactive command-line interface
// for the IED editor.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/scl-tools/iedit-go/pkg/edit"
	"github.com/scl-tools/iedit-go/pkg/focus"
	"github.com/scl-tools/iedit-go/pkg/inspect"
	"github.com/scl-tools/iedit-go/pkg/plugin"
	"github.com/scl-tools/iedit-go/pkg/scl"
	"github.com/scl-tools/iedit-go/pkg/synth"
)

// SaveFunc writes the engine's document to path. An empty path means the
// file the session was opened from.
type SaveFunc func(path string) error

// Shell handles interactive mode for iedit.
type Shell struct {
	eng       *plugin.Engine
	save      SaveFunc
	formatter *inspect.Formatter
	rl        *readline.Instance
	out       io.Writer

	dirty bool
}

// New creates a new interactive shell reading from the terminal.
func New(eng *plugin.Engine, save SaveFunc) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "iedit> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := NewWithWriter(eng, save, rl.Stdout())
	s.rl = rl
	return s, nil
}

// NewWithWriter creates a shell without a terminal. Commands are fed through
// Execute and their output goes to w.
func NewWithWriter(eng *plugin.Engine, save SaveFunc, w io.Writer) *Shell {
	s := &Shell{
		eng:       eng,
		save:      save,
		formatter: inspect.NewFormatter(),
		out:       w,
	}

	eng.OnSelectionChange(func(devices []string) {
		fmt.Fprintf(s.out, "[selection] %s\n", strings.Join(devices, ", "))
	})
	eng.OnFocusChange(func(ev focus.Event) {
		fmt.Fprintf(s.out, "[%s] %s\n", strings.ToLower(ev.Kind.String()), strings.Join(ev.Path, " / "))
	})
	return s
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			cancel()
			return
		}

		if !s.Execute(line) {
			cancel()
			return
		}
	}
}

// Execute runs one command line. It returns false when the shell should
// exit.
func (s *Shell) Execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return true
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "devices", "ls":
		s.cmdDevices()

	case "select", "sel":
		s.cmdSelect(args)

	case "classes":
		s.cmdClasses()

	case "filter":
		s.cmdFilter(args)

	case "tree", "t":
		s.cmdTree()

	case "types":
		s.cmdTypes(args)

	case "focus", "f":
		s.cmdFocus(args)

	case "blur", "b":
		s.eng.Blur()

	case "add-ied":
		s.cmdAddIED(args)

	case "add-ap":
		s.cmdAddAP(args)

	case "add-ld":
		s.cmdAddLD(args)

	case "add-ln":
		s.cmdAddLN(args)

	case "save", "w":
		s.cmdSave(args)

	case "quit", "exit", "q":
		if s.dirty {
			fmt.Fprintln(s.out, "Unsaved changes discarded.")
		}
		fmt.Fprintln(s.out, "Exiting...")
		return false

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
IED Editor Commands:
  Selection:
    devices                    - List devices, selected ones marked with *
    select <name>...           - Select devices
    classes                    - List logical node classes of the selection
    filter [class]...          - Show only these classes (no args clears)

  Inspection:
    tree                       - Show the selected devices with resolved data
    types [kind]               - List data type templates
    focus <path>               - Focus a node and show it
    blur                       - Drop the focused node from the path

  Editing:
    add-ied <name>                     - Create a virtual device
    add-ap <device> <name> [server-at] - Add an access point
    add-ld <device> <ap> <inst>        - Add a logical device
    add-ln <device/ap/ld> <lnType> [amount] [prefix]
                                       - Add logical nodes
    save [file]                - Write the document

  General:
    help                       - Show this help
    quit                       - Exit the editor

  Path Format:
    device/accessPoint/ldInst/LN.DO.DA - e.g., IED1/AP1/LD1/XCBR1.Pos.stVal`)
}

func (s *Shell) cmdDevices() {
	selected := make(map[string]bool)
	for _, name := range s.eng.Selected() {
		selected[name] = true
	}
	for _, name := range s.eng.DeviceNames() {
		mark := " "
		if selected[name] {
			mark = "*"
		}
		fmt.Fprintf(s.out, "%s %s\n", mark, name)
	}
}

func (s *Shell) cmdSelect(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Usage: select <name>...")
		return
	}
	if err := s.eng.Select(args...); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Shell) cmdClasses() {
	classes := s.eng.LNClasses()
	if len(classes) == 0 {
		fmt.Fprintln(s.out, "(no logical nodes)")
		return
	}
	active := make(map[string]bool)
	for _, c := range s.eng.LNClassFilter() {
		active[c] = true
	}
	for _, c := range classes {
		mark := " "
		if active[c] {
			mark = "*"
		}
		fmt.Fprintf(s.out, "%s %s\n", mark, c)
	}
}

func (s *Shell) cmdFilter(args []string) {
	if err := s.eng.SetLNClassFilter(args...); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Filter cleared")
	}
}

func (s *Shell) cmdTree() {
	tree := s.eng.Tree()
	if len(tree) == 0 {
		fmt.Fprintln(s.out, "(nothing selected)")
		return
	}
	if err := s.formatter.FormatTree(s.out, tree); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Shell) cmdTypes(args []string) {
	kind := scl.DefinitionNone
	if len(args) > 0 {
		k, ok := inspect.ResolveKindName(args[0])
		if !ok {
			fmt.Fprintf(s.out, "Unknown kind: %s (want one of %s)\n", args[0], strings.Join(inspect.KindNames(), ", "))
			return
		}
		kind = k
	}
	types := inspect.NewInspector(s.eng.Document()).Types(kind)
	if err := s.formatter.FormatTypes(s.out, types); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Shell) cmdFocus(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: focus <path>")
		return
	}
	p, target, err := s.locate(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if target.Entry != nil {
		in := inspect.NewInspector(s.eng.Document())
		s.eng.FocusTitles(in.Titles(p, target))
		fmt.Fprintln(s.out, s.formatter.FormatEntry(target))
		return
	}
	s.eng.Focus(target.Node)
}

func (s *Shell) cmdAddIED(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "Usage: add-ied <name>")
		return
	}
	batch, err := s.eng.CreateVirtualDevice(args[0])
	s.commit(plugin.OpVirtualDevice, batch, err)
}

func (s *Shell) cmdAddAP(args []string) {
	if len(args) < 2 || len(args) > 3 {
		fmt.Fprintln(s.out, "Usage: add-ap <device> <name> [server-at]")
		return
	}
	_, target, err := s.locate(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	req := synth.AccessPointRequest{Name: args[1]}
	if len(args) == 3 {
		req.ServerAt = args[2]
	}
	batch, err := s.eng.AddAccessPoint(target.Node, req)
	s.commit(plugin.OpAccessPoint, batch, err)
}

func (s *Shell) cmdAddLD(args []string) {
	if len(args) != 3 {
		fmt.Fprintln(s.out, "Usage: add-ld <device> <ap> <inst>")
		return
	}
	_, target, err := s.locate(args[0] + "/" + args[1])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	server := s.eng.Document().FirstChild(target.Node, scl.TagServer)
	if server == scl.NoHandle {
		fmt.Fprintf(s.out, "Error: access point %s has no server\n", args[1])
		return
	}
	batch, err := s.eng.AddLogicalDevice(server, args[2])
	s.commit(plugin.OpLogicalDevice, batch, err)
}

func (s *Shell) cmdAddLN(args []string) {
	if len(args) < 2 || len(args) > 4 {
		fmt.Fprintln(s.out, "Usage: add-ln <device/ap/ld> <lnType> [amount] [prefix]")
		return
	}
	_, target, err := s.locate(args[0])
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	req := synth.LogicalNodeRequest{LNType: args[1], Amount: 1}
	if len(args) >= 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n < 1 {
			fmt.Fprintf(s.out, "Invalid amount: %s\n", args[2])
			return
		}
		req.Amount = n
	}
	if len(args) == 4 {
		req.Prefix = args[3]
	}
	batch, err := s.eng.AddLogicalNodes(target.Node, req)
	s.commit(plugin.OpLogicalNodes, batch, err)
}

func (s *Shell) cmdSave(args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	if s.save == nil {
		fmt.Fprintln(s.out, "Saving is not available")
		return
	}
	if err := s.save(path); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.dirty = false
	fmt.Fprintln(s.out, "Saved")
}

// commit applies a produced batch, or reports why none was produced.
func (s *Shell) commit(op string, batch edit.Batch, err error) {
	if err != nil {
		var verr *synth.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(s.out, "Invalid %s %q: %s\n", verr.Field, verr.Value, verr.Result)
			return
		}
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	if len(batch) == 0 {
		fmt.Fprintln(s.out, "Nothing to add")
		return
	}
	if err := s.eng.Commit(op, batch); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.dirty = true
	fmt.Fprintf(s.out, "Added %d elements (%s)\n", len(batch), batch.Summary())
}

func (s *Shell) locate(path string) (*inspect.Path, inspect.Target, error) {
	p, err := inspect.ParsePath(path)
	if err != nil {
		return nil, inspect.Target{}, err
	}
	t, err := inspect.NewInspector(s.eng.Document()).Locate(p)
	if err != nil {
		return nil, inspect.Target{}, err
	}
	return p, t, nil
}

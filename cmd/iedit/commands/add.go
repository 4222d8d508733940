package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/scl-tools/iedit-go/pkg/edit"
	"github.com/scl-tools/iedit-go/pkg/inspect"
	"github.com/scl-tools/iedit-go/pkg/plugin"
	"github.com/scl-tools/iedit-go/pkg/scl"
	"github.com/scl-tools/iedit-go/pkg/synth"
)

var addIEDCmd = &cobra.Command{
	Use:   "add-ied [flags] <file.scd> <name>",
	Short: "Add a virtual device",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, args[0], func(s *Session) (string, edit.Batch, error) {
			batch, err := s.Engine.CreateVirtualDevice(args[1])
			return plugin.OpVirtualDevice, batch, err
		})
	},
}

var addAPCmd = &cobra.Command{
	Use:   "add-ap [flags] <file.scd> <device> <name>",
	Short: "Add an access point to a device",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := synth.AccessPointRequest{Name: args[2]}
		req.Desc, _ = cmd.Flags().GetString("desc")
		req.ServerAt, _ = cmd.Flags().GetString("server-at")
		req.ServerAtDesc, _ = cmd.Flags().GetString("server-at-desc")

		return withSession(cmd, args[0], func(s *Session) (string, edit.Batch, error) {
			batch, err := AddAccessPoint(s.Engine, args[1], req)
			return plugin.OpAccessPoint, batch, err
		})
	},
}

var addLDCmd = &cobra.Command{
	Use:   "add-ld [flags] <file.scd> <device> <access-point> <inst>",
	Short: "Add a logical device to an access point's server",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, args[0], func(s *Session) (string, edit.Batch, error) {
			batch, err := AddLogicalDevice(s.Engine, args[1], args[2], args[3])
			return plugin.OpLogicalDevice, batch, err
		})
	},
}

var addLNCmd = &cobra.Command{
	Use:   "add-ln [flags] <file.scd> <device> <access-point> <ld-inst>",
	Short: "Add logical nodes to a logical device",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		var req synth.LogicalNodeRequest
		req.LNClass, _ = cmd.Flags().GetString("lnclass")
		req.LNType, _ = cmd.Flags().GetString("lntype")
		req.Prefix, _ = cmd.Flags().GetString("prefix")
		req.Amount, _ = cmd.Flags().GetInt("amount")

		return withSession(cmd, args[0], func(s *Session) (string, edit.Batch, error) {
			path := args[1] + "/" + args[2] + "/" + args[3]
			batch, err := AddLogicalNodes(s.Engine, path, req)
			return plugin.OpLogicalNodes, batch, err
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{addIEDCmd, addAPCmd, addLDCmd, addLNCmd} {
		c.Flags().StringP("out", "o", "", "write the result to this file instead of replacing the input")
		c.Flags().Bool("dry-run", false, "print the insert batch without applying it")
	}
	addAPCmd.Flags().String("desc", "", "access point description")
	addAPCmd.Flags().String("server-at", "", "name of an access point with a server to reference")
	addAPCmd.Flags().String("server-at-desc", "", "ServerAt description")

	addLNCmd.Flags().String("lnclass", "", "logical node class (default: class of the node type)")
	addLNCmd.Flags().String("lntype", "", "node type id")
	addLNCmd.Flags().String("prefix", "", "logical node prefix")
	addLNCmd.Flags().Int("amount", 1, "number of logical nodes")
	_ = addLNCmd.MarkFlagRequired("lntype")
}

// withSession runs a synthesizing operation and commits and saves its batch.
func withSession(cmd *cobra.Command, path string, op func(*Session) (string, edit.Batch, error)) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	s, err := OpenSession(cfg, path, os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	name, batch, err := op(s)
	if err != nil {
		return err
	}
	PrintBatch(cmd.OutOrStdout(), batch)
	if dryRun {
		return nil
	}
	if err := s.Engine.Commit(name, batch); err != nil {
		return err
	}
	return s.Save(out)
}

// AddAccessPoint locates the device and builds the access point batch.
func AddAccessPoint(eng *plugin.Engine, device string, req synth.AccessPointRequest) (edit.Batch, error) {
	h, err := locate(eng, device)
	if err != nil {
		return nil, err
	}
	return eng.AddAccessPoint(h, req)
}

// AddLogicalDevice locates the access point's server and builds the
// logical device batch.
func AddLogicalDevice(eng *plugin.Engine, device, accessPoint, inst string) (edit.Batch, error) {
	ap, err := locate(eng, device+"/"+accessPoint)
	if err != nil {
		return nil, err
	}
	server := eng.Document().FirstChild(ap, scl.TagServer)
	if server == scl.NoHandle {
		return nil, fmt.Errorf("access point %s/%s has no server", device, accessPoint)
	}
	return eng.AddLogicalDevice(server, inst)
}

// AddLogicalNodes locates the logical device named by path
// (device/access-point/ld-inst) and builds the logical node batch.
func AddLogicalNodes(eng *plugin.Engine, path string, req synth.LogicalNodeRequest) (edit.Batch, error) {
	ld, err := locate(eng, path)
	if err != nil {
		return nil, err
	}
	return eng.AddLogicalNodes(ld, req)
}

func locate(eng *plugin.Engine, path string) (scl.Handle, error) {
	p, err := inspect.ParsePath(path)
	if err != nil {
		return scl.NoHandle, err
	}
	t, err := inspect.NewInspector(eng.Document()).Locate(p)
	if err != nil {
		return scl.NoHandle, err
	}
	return t.Node, nil
}

// PrintBatch writes one line per insert.
func PrintBatch(w io.Writer, batch edit.Batch) {
	for i, ins := range batch {
		line := strconv.Itoa(i+1) + ". " + ins.Node.Name
		for _, a := range []string{"name", "inst", "id", "lnClass"} {
			if v, ok := ins.Node.Attr(a); ok && v != "" {
				line += " " + a + "=" + v
			}
		}
		fmt.Fprintf(w, "%s (parent %s, before %s)\n", line, ins.Parent, ins.Reference)
	}
}

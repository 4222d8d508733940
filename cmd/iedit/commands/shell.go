package commands

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/scl-tools/iedit-go/cmd/iedit/interactive"
)

var shellCmd = &cobra.Command{
	Use:   "shell [flags] <file.scd>",
	Short: "Start the interactive editor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		s, err := OpenSession(cfg, args[0], os.Stderr)
		if err != nil {
			return err
		}
		defer s.Close()

		sh, err := interactive.New(s.Engine, s.Save)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()
		sh.Run(ctx, cancel)
		return nil
	},
}

// Package commands implements the iedit CLI commands.
//
// Configuration is read from flags, IEDIT_* environment variables and an
// optional .iedit.yaml file, in that order of precedence.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "iedit",
	Short: "Inspect and extend SCL substation configuration documents",
	Long: `iedit reads an SCL document and shows its devices with the data type
templates resolved under every logical node. It creates virtual devices,
access points, logical devices and logical nodes as atomic edits and can
record every edit in a binary journal.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .iedit.yaml, can also use IEDIT_CONFIG_FILE env var)")
	flags.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("journal", "", "append journal events to this file")
	flags.String("state", "", "plugin state file (selection is restored and saved)")
	flags.String("manufacturer", "", "manufacturer of new virtual devices")
	flags.String("output", DefaultOutput, "output format for tree and types (text, yaml)")

	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name != "config" {
			_ = viper.BindPFlag(f.Name, f)
		}
	})

	rootCmd.AddCommand(treeCmd, typesCmd, addIEDCmd, addAPCmd, addLDCmd, addLNCmd, journalCmd, shellCmd)
}

// initConfig reads the config file and enables IEDIT_ environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("IEDIT_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".iedit")
	}

	viper.SetEnvPrefix("IEDIT")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

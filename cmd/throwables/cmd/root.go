package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mdwerrors "github.com/msto63/throwables/pkg/core/errors"
)

var (
	cfgFile string
	verbose bool
	plain   bool

	current *app
)

var rootCmd = &cobra.Command{
	Use:   "throwables",
	Short: "throwables - scarpet exception taxonomy",
	Long: `throwables inspects and extends the exception type hierarchy used by
scarpet throw/catch handling.

The built-in types are always present. Declarations from the config file,
the journal and the declarations directory are applied at startup, in
that order.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		a, err := newApp(cfgFile, verbose)
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current != nil {
			return current.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
		if current != nil {
			current.Close()
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $THROWABLES_CONFIG or ./configs/throwables.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&plain, "plain", false, "disable colors")
}

func printError(err error) {
	if code := mdwerrors.GetCode(err); code != mdwerrors.CodeUnknown {
		fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", code, err)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

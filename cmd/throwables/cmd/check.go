package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/throwables/internal/render"
	"github.com/msto63/throwables/pkg/scarpet"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <thrown> <filter>...",
	Short: "Show which catch filter handles a thrown type",
	Long: `Checks the filters in order, innermost handler first, and reports the
first one that catches the thrown type.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		thrown, err := scarpet.Throw(current.reg, args[0], nil)
		if err != nil {
			return err
		}

		filters := args[1:]
		idx, err := scarpet.Catch(current.reg, thrown, filters...)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), render.Match(args[0], filters, idx, render.Options{Plain: plain}))
		if idx < 0 && checkStrict {
			return fmt.Errorf("%s is not caught", args[0])
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "fail when no filter catches")
	rootCmd.AddCommand(checkCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/throwables/internal/render"
)

var treeSummary bool

var treeCmd = &cobra.Command{
	Use:   "tree [id]",
	Short: "Show the exception taxonomy",
	Long:  `Shows the subtree below id, or the whole taxonomy.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}

		opts := render.Options{Plain: plain, Describe: current.describe}
		out, err := render.Tree(current.reg, id, opts)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)

		if treeSummary {
			fmt.Fprintln(cmd.OutOrStdout(), render.Summary(current.reg, opts))
		}
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVarP(&treeSummary, "summary", "s", false, "print type counts")
	rootCmd.AddCommand(treeCmd)
}

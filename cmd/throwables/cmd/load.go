package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/throwables/internal/render"
	"github.com/msto63/throwables/pkg/taxonomy"
)

var loadWatch bool

var loadCmd = &cobra.Command{
	Use:   "load <dir>",
	Short: "Load declaration files from a directory",
	Long: `Registers the types declared in *.yaml and *.yml files in dir and
prints the resulting taxonomy. With --watch, keeps running and registers
new declarations as files change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := current.newLoader(args[0])
		if current.loader == nil {
			current.loader = loader
		}

		n, err := loader.LoadAll()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d new exception types\n", n)

		if !loadWatch {
			out, err := render.Tree(current.reg, taxonomy.UserException, render.Options{Plain: plain, Describe: loader.Description})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		loader.SetOnDeclare(func(et *taxonomy.ExceptionType, source string) {
			fmt.Fprintf(cmd.OutOrStdout(), "declared %s < %s\n", et.ID(), et.ParentID())
		})
		if err := loader.Watch(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "watching %s, press Ctrl+C to stop\n", loader.Directory())

		<-ctx.Done()
		loader.Stop()
		return nil
	},
}

func init() {
	loadCmd.Flags().BoolVarP(&loadWatch, "watch", "w", false, "watch the directory for changes")
	rootCmd.AddCommand(loadCmd)
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/throwables/pkg/core/health"
	"github.com/msto63/throwables/pkg/core/version"
	"github.com/msto63/throwables/pkg/taxonomy"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the taxonomy, journal and declarations directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := current.monitor().CheckWithTimeout(5 * time.Second)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s v%s: %s\n", report.Service, report.Version, report.Status)
		for _, c := range report.Checks {
			line := fmt.Sprintf("  %-13s %s", c.Name, c.Status)
			if c.Message != "" {
				line += " (" + c.Message + ")"
			}
			fmt.Fprintln(out, line)
		}

		if report.Status == health.StatusUnhealthy {
			return fmt.Errorf("status %s", report.Status)
		}
		return nil
	},
}

// monitor builds the checks for the configured components
func (a *app) monitor() *health.Monitor {
	m := health.NewMonitor(a.cfg.General.Name, version.Version)

	m.Register(health.FromError("taxonomy", health.StatusUnhealthy, func(ctx context.Context) error {
		return taxonomy.Verify(a.reg)
	}))

	if a.journal != nil {
		m.Register(health.FromError("journal", health.StatusDegraded, func(ctx context.Context) error {
			_, err := a.journal.List(ctx)
			return err
		}))
	}

	if dir := a.cfg.Taxonomy.DeclarationsDir; dir != "" {
		m.Register(health.FromError("declarations", health.StatusDegraded, func(ctx context.Context) error {
			info, err := os.Stat(dir)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}
			return nil
		}))
	}

	return m
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

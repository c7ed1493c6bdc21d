package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mdwgrpc "github.com/msto63/throwables/pkg/core/grpc"
)

var serveListen string

// serveContext ends the serve command; replaced in tests
var serveContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve gRPC health for the taxonomy",
	Long: `Runs the status checks periodically and publishes them through the
standard grpc.health.v1 service: the overall status under the empty
service name and each check (taxonomy, journal, declarations) under its
own. Combine with taxonomy.watch to pick up declaration file changes
while serving.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := current.cfg.GRPC
		addr := cfg.Listen
		if serveListen != "" {
			addr = serveListen
		}

		mdwgrpc.SetLogger(current.logger.With("component", "grpc"))
		srv := mdwgrpc.NewServer(current.monitor(), mdwgrpc.ServerConfig{
			Addr:             addr,
			RequestIDHeader:  cfg.RequestIDHeader,
			HealthInterval:   cfg.HealthInterval.Duration,
			EnableReflection: true,
		})
		if err := srv.Listen(); err != nil {
			return err
		}

		ctx, stop := serveContext()
		defer stop()

		fmt.Fprintf(cmd.OutOrStdout(), "serving gRPC health on %s\n", srv.Address())
		return srv.Serve(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default: grpc.listen from the config)")
	rootCmd.AddCommand(serveCmd)
}

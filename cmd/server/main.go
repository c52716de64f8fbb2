package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/showdownbot/chart-engine/internal/card"
	"github.com/showdownbot/chart-engine/internal/config"
	"github.com/showdownbot/chart-engine/internal/logger"
	"github.com/showdownbot/chart-engine/internal/rpc"
	"github.com/showdownbot/chart-engine/internal/rules"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "showdown-server",
		Short: "Serve the Showdown chart engine over gRPC",
		Args:  cobra.NoArgs,
		RunE:  run,
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./showdown.yaml)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat, nil)
	log := logger.WithComponent("server")

	loader := rules.Open(cfg.RulesDir)
	if _, err := loader.Resolve(cfg.DefaultSet, ""); err != nil {
		return fmt.Errorf("default set %s: %w", cfg.DefaultSet, err)
	}
	builder := card.NewBuilder(loader, logger.WithComponent("card"))

	if cfg.WatchRules && cfg.RulesDir != "" {
		w := rules.NewFileWatcher(cfg.RulesDir, func(path string) {
			loader.Invalidate()
			builder.Reset()
			log.WithField("path", path).Info("rules changed, caches dropped")
		}, func(err error) {
			log.WithError(err).Warn("rules watcher error")
		})
		if err := w.Start(); err != nil {
			return fmt.Errorf("watch rules: %w", err)
		}
		defer w.Stop()
	}

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPCAddr, err)
	}
	srv := grpc.NewServer(grpc.UnaryInterceptor(rpc.UnaryLogging(logger.WithComponent("rpc"))))
	rpc.RegisterChartServiceServer(srv, rpc.NewServer(builder, loader, cfg.BuildTimeout, logger.WithComponent("rpc")))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		srv.GracefulStop()
	}()

	log.WithField("addr", lis.Addr().String()).Info("listening")
	if err := srv.Serve(lis); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

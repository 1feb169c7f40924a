package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swapScope/internal/chain"
	"swapScope/internal/config"
	"swapScope/internal/monitor"
)

func runReplay(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadReplay(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCHTTPURL == "" {
		return fmt.Errorf("rpc-http url is required")
	}
	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var input io.Reader = os.Stdin
	if cfg.In != "-" {
		file, err := os.Open(cfg.In)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer file.Close()
		input = file
	}

	stateClient, err := chain.NewClient(ctx, cfg.RPCHTTPURL)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer stateClient.Close()

	pipeline, closeSinks, err := buildPipeline(ctx, stateClient, pipelineConfig{
		V2Router:         cfg.V2Router,
		V3Router:         cfg.V3Router,
		UniversalRouters: cfg.UniversalRouters,
		Out:              cfg.Out,
		PGDSN:            cfg.PGDSN,
		MinScore:         cfg.MinScore,
	}, logger)
	if err != nil {
		return err
	}
	defer closeSinks()

	stats, err := monitor.Replay(ctx, input, pipeline, logger)
	if err != nil {
		return err
	}

	logger.Info("replay complete",
		zap.Int("lines", stats.Lines),
		zap.Int("decoded", stats.Decoded),
	)
	return nil
}

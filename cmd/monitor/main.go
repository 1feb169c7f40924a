package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"swapScope/internal/alert"
	"swapScope/internal/amm"
	"swapScope/internal/chain"
	"swapScope/internal/config"
	"swapScope/internal/dex"
	"swapScope/internal/monitor"
	"swapScope/internal/risk"
	"swapScope/internal/storage"
	"swapScope/internal/storage/postgres"
	"swapScope/internal/tokens"
)

func main() {
	root := &cobra.Command{
		Use:          "monitor",
		Short:        "Mempool swap monitor",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the mempool for swaps and assess sandwich risk",
		RunE:  runWatch,
	}

	watchCmd.Flags().String("rpc-ws", "", "websocket RPC URL for the pending-tx subscription")
	watchCmd.Flags().String("rpc-http", "", "HTTP RPC URL for state reads (defaults to rpc-ws)")
	watchCmd.Flags().String("v2-router", "", "V2 router address override")
	watchCmd.Flags().String("v3-router", "", "V3 router address override")
	watchCmd.Flags().StringSlice("universal-router", nil, "universal router addresses (comma-separated)")
	watchCmd.Flags().Int("workers", 4, "concurrent tx processors")
	watchCmd.Flags().Int("max-retries", 3, "maximum retry attempts for chain reads")
	watchCmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	watchCmd.Flags().String("out", "", "optional alerts JSONL path")
	watchCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for alerts")
	watchCmd.Flags().Int("min-score", 0, "only emit alerts scoring at least this")
	watchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(watchCmd)

	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay captured pending transactions through the pipeline",
		RunE:  runReplay,
	}

	replayCmd.Flags().String("rpc-http", "", "HTTP RPC URL for state reads")
	replayCmd.Flags().String("in", "", "input pending-tx JSONL path ('-' for stdin)")
	replayCmd.Flags().String("v2-router", "", "V2 router address override")
	replayCmd.Flags().String("v3-router", "", "V3 router address override")
	replayCmd.Flags().StringSlice("universal-router", nil, "universal router addresses (comma-separated)")
	replayCmd.Flags().String("out", "", "optional alerts JSONL path")
	replayCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for alerts")
	replayCmd.Flags().Int("min-score", 0, "only emit alerts scoring at least this")
	replayCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(replayCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCWSURL == "" {
		return fmt.Errorf("rpc-ws url is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wsClient, err := chain.NewClient(ctx, cfg.RPCWSURL)
	if err != nil {
		return fmt.Errorf("connect ws rpc: %w", err)
	}
	defer wsClient.Close()

	stateClient := wsClient
	if cfg.RPCHTTPURL != "" {
		stateClient, err = chain.NewClient(ctx, cfg.RPCHTTPURL)
		if err != nil {
			return fmt.Errorf("connect http rpc: %w", err)
		}
		defer stateClient.Close()
	}

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

	watcher := monitor.NewWatcher(monitor.WatchConfig{
		Workers:      cfg.Workers,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
	}, wsClient, pipeline, logger)

	logger.Info("monitor start",
		zap.String("rpc_ws", cfg.RPCWSURL),
		zap.Int("workers", cfg.Workers),
		zap.String("out", cfg.Out),
		zap.Bool("postgres", cfg.PGDSN != ""),
		zap.Int("min_score", cfg.MinScore),
	)

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// pipelineConfig carries the settings shared by watch and replay.
type pipelineConfig struct {
	V2Router         string
	V3Router         string
	UniversalRouters []string
	Out              string
	PGDSN            string
	MinScore         int
}

func buildPipeline(ctx context.Context, stateClient *chain.Client, cfg pipelineConfig, logger *zap.Logger) (*monitor.Pipeline, func(), error) {
	registry := dex.NewRegistry(dex.RegistryConfig{
		V2Router:         cfg.V2Router,
		V3Router:         cfg.V3Router,
		UniversalRouters: cfg.UniversalRouters,
	})
	decoder, err := dex.NewTxDecoder(registry)
	if err != nil {
		return nil, nil, fmt.Errorf("build decoder: %w", err)
	}

	resolver := tokens.NewResolver(stateClient, tokens.NewMetaCache(), logger)

	pairReader := amm.NewPairReader(stateClient, logger)
	quoter := amm.NewV3Quoter(stateClient, common.Address{}, common.Address{}, logger)
	assessor := risk.NewAssessor(amm.NewPairDeriver(common.Address{}, common.Hash{}), pairReader, quoter, logger)

	sinks := alert.MultiSink{alert.NewLogSink(logger)}
	closeSinks := func() {}

	if cfg.Out != "" {
		sinks = append(sinks, alert.NewStorageSink(storage.NewJsonlStorage(cfg.Out)))
	}
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		sinks = append(sinks, alert.NewStorageSink(store))
		closeSinks = store.Close
	}

	var sink alert.Sink = sinks
	if cfg.MinScore > 0 {
		sink = alert.NewMinScoreSink(sink, cfg.MinScore)
	}

	return monitor.NewPipeline(decoder, resolver, assessor, sink, logger), closeSinks, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

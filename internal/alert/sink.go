package alert

import (
	"context"

	"go.uber.org/zap"

	"swapScope/internal/model"
	"swapScope/internal/storage"
)

// Sink receives finished alert records.
type Sink interface {
	Publish(ctx context.Context, record model.AlertRecord) error
}

// LogSink prints alerts through the structured logger. Amount fields are
// rendered in token units so the feed is readable without a calculator.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Publish(_ context.Context, record model.AlertRecord) error {
	fields := []zap.Field{
		zap.String("tx", record.TxHash),
		zap.String("router", string(record.Router)),
		zap.String("venue", string(record.Venue)),
		zap.String("method", record.Method),
		zap.String("pair", record.SymbolIn+"->"+record.SymbolOut),
		zap.Int("score", record.Score),
		zap.String("level", string(record.Level)),
	}
	if record.AmountIn != "" {
		fields = append(fields, zap.String("amount_in", record.AmountIn+" "+record.SymbolIn))
	}
	if record.MinOut != "" {
		fields = append(fields, zap.String("min_out", record.MinOut+" "+record.SymbolOut))
	}
	if record.ExpectedOut != "" {
		fields = append(fields, zap.String("expected_out", record.ExpectedOut+" "+record.SymbolOut))
	}
	if record.GasPriceGwei != "" {
		fields = append(fields, zap.String("gas_gwei", record.GasPriceGwei))
	}
	if record.PriceImpactBps != nil {
		fields = append(fields, zap.Uint32("price_impact_bps", *record.PriceImpactBps))
	}
	if record.TicksCrossed != nil {
		fields = append(fields, zap.Int32("ticks_crossed", *record.TicksCrossed))
	}
	if record.PoolShareBps != nil {
		fields = append(fields, zap.Uint32("pool_share_bps", *record.PoolShareBps))
	}
	if record.UserSlippageBps != nil {
		fields = append(fields, zap.Uint32("user_slippage_bps", *record.UserSlippageBps))
	}

	switch record.Level {
	case model.RiskHigh:
		s.logger.Warn("swap at risk", fields...)
	default:
		s.logger.Info("swap observed", fields...)
	}
	return nil
}

// StorageSink forwards alerts into a storage backend one record at a time.
type StorageSink struct {
	store storage.Storage
}

func NewStorageSink(store storage.Storage) *StorageSink {
	return &StorageSink{store: store}
}

func (s *StorageSink) Publish(_ context.Context, record model.AlertRecord) error {
	return s.store.PutAlertBatch([]model.AlertRecord{record})
}

// MinScoreSink drops records scoring below the threshold before handing
// the rest to the wrapped sink.
type MinScoreSink struct {
	next     Sink
	minScore int
}

func NewMinScoreSink(next Sink, minScore int) *MinScoreSink {
	return &MinScoreSink{next: next, minScore: minScore}
}

func (s *MinScoreSink) Publish(ctx context.Context, record model.AlertRecord) error {
	if record.Score < s.minScore {
		return nil
	}
	return s.next.Publish(ctx, record)
}

// MultiSink fans one record out to several sinks; the first failure wins.
type MultiSink []Sink

func (m MultiSink) Publish(ctx context.Context, record model.AlertRecord) error {
	for _, sink := range m {
		if err := sink.Publish(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

package monitor

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"swapScope/internal/model"
)

// ReplayStats summarizes one replay run.
type ReplayStats struct {
	Lines   int
	Decoded int
}

// Replay feeds captured pending transactions, one JSON object per line,
// through the pipeline. Malformed lines are skipped with a warning so one
// bad capture does not abort the run.
func Replay(ctx context.Context, r io.Reader, pipeline *Pipeline, logger *zap.Logger) (ReplayStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	stats := ReplayStats{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		stats.Lines++

		var tx model.PendingTx
		if err := json.Unmarshal(line, &tx); err != nil {
			logger.Warn("skip malformed line", zap.Int("line", stats.Lines), zap.Error(err))
			continue
		}

		handled, err := pipeline.Process(ctx, tx)
		if err != nil {
			logger.Warn("process failed", zap.String("tx", tx.Hash), zap.Error(err))
			continue
		}
		if handled {
			stats.Decoded++
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read input: %w", err)
	}
	return stats, nil
}

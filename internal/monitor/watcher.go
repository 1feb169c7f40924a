package monitor

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"swapScope/internal/model"
)

// TxFeed is the chain surface the watcher needs.
type TxFeed interface {
	GetChainID(ctx context.Context) (*big.Int, error)
	SubscribePendingTxs(ctx context.Context, ch chan<- common.Hash) (ethereum.Subscription, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (*types.Transaction, bool, error)
}

// WatchConfig holds runtime settings for the mempool watcher.
type WatchConfig struct {
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
}

// Watcher subscribes to the node's pending-transaction feed and fans the
// hashes out to a worker pool that fetches and processes each one. A
// dropped subscription is re-established with backoff; workers keep
// draining throughout.
type Watcher struct {
	cfg      WatchConfig
	feed     TxFeed
	pipeline *Pipeline
	logger   *zap.Logger
}

// NewWatcher builds a Watcher.
func NewWatcher(cfg WatchConfig, feed TxFeed, pipeline *Pipeline, logger *zap.Logger) *Watcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{cfg: cfg, feed: feed, pipeline: pipeline, logger: logger}
}

// Run blocks until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.feed == nil {
		return fmt.Errorf("tx feed is nil")
	}
	if w.pipeline == nil {
		return fmt.Errorf("pipeline is nil")
	}

	chainID, err := w.feed.GetChainID(ctx)
	if err != nil {
		return fmt.Errorf("get chain id: %w", err)
	}
	signer := types.LatestSignerForChainID(chainID)
	w.logger.Info("watching mempool", zap.String("chain_id", chainID.String()), zap.Int("workers", w.cfg.Workers))

	hashes := make(chan common.Hash, 512)

	var wg sync.WaitGroup
	for i := 0; i < w.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.worker(ctx, signer, hashes)
		}()
	}

	err = w.subscribeLoop(ctx, hashes)
	wg.Wait()
	return err
}

func (w *Watcher) subscribeLoop(ctx context.Context, hashes chan common.Hash) error {
	for {
		sub, err := w.feed.SubscribePendingTxs(ctx, hashes)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Warn("subscribe failed", zap.Error(err))
			if err := sleepCtx(ctx, w.cfg.RetryBackoff); err != nil {
				return err
			}
			continue
		}

		select {
		case <-ctx.Done():
			sub.Unsubscribe()
			return ctx.Err()
		case err := <-sub.Err():
			sub.Unsubscribe()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Warn("subscription dropped", zap.Error(err))
			if err := sleepCtx(ctx, w.cfg.RetryBackoff); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) worker(ctx context.Context, signer types.Signer, hashes <-chan common.Hash) {
	for {
		select {
		case <-ctx.Done():
			return
		case hash := <-hashes:
			w.handleHash(ctx, signer, hash)
		}
	}
}

func (w *Watcher) handleHash(ctx context.Context, signer types.Signer, hash common.Hash) {
	tx, err := w.fetchWithRetry(ctx, hash)
	if err != nil {
		w.logger.Debug("tx fetch failed", zap.String("tx", hash.Hex()), zap.Error(err))
		return
	}
	if tx == nil || tx.To() == nil {
		return
	}

	from := ""
	if sender, err := types.Sender(signer, tx); err == nil {
		from = strings.ToLower(sender.Hex())
	}

	pending := model.PendingTx{
		Hash:     hash.Hex(),
		From:     from,
		To:       strings.ToLower(tx.To().Hex()),
		Data:     hexutil.Encode(tx.Data()),
		Value:    tx.Value().String(),
		GasPrice: tx.GasPrice().String(),
		SeenAt:   time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := w.pipeline.Process(ctx, pending); err != nil {
		w.logger.Warn("process failed", zap.String("tx", hash.Hex()), zap.Error(err))
	}
}

// fetchWithRetry loads a pending transaction, retrying briefly: a hash
// from the feed can land before the node can serve the body.
func (w *Watcher) fetchWithRetry(ctx context.Context, hash common.Hash) (*types.Transaction, error) {
	var tx *types.Transaction
	err := withRetry(ctx, w.cfg.MaxRetries, w.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		tx, _, err = w.feed.TransactionByHash(ctx, hash)
		return err
	})
	return tx, err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

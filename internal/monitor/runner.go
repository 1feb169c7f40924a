package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"swapScope/internal/alert"
	"swapScope/internal/dex"
	"swapScope/internal/model"
	"swapScope/internal/risk"
	"swapScope/internal/tokens"
)

// Pipeline runs one pending transaction through decode, metadata
// resolution, risk assessment and alert publication.
type Pipeline struct {
	decoder  *dex.TxDecoder
	resolver *tokens.Resolver
	assessor *risk.Assessor
	sink     alert.Sink
	logger   *zap.Logger
}

// NewPipeline builds a Pipeline with its dependencies.
func NewPipeline(decoder *dex.TxDecoder, resolver *tokens.Resolver, assessor *risk.Assessor, sink alert.Sink, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		decoder:  decoder,
		resolver: resolver,
		assessor: assessor,
		sink:     sink,
		logger:   logger,
	}
}

// Process decodes and assesses a single pending transaction. handled is
// false when the transaction is not a decodable swap. A panic while
// processing is contained to this transaction and surfaced as an error so
// the stream keeps flowing.
func (p *Pipeline) Process(ctx context.Context, tx model.PendingTx) (handled bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			handled = false
			err = fmt.Errorf("process %s: panic: %v", tx.Hash, r)
		}
	}()

	if tx.To == "" {
		return false, nil
	}

	data := common.FromHex(tx.Data)
	if len(data) < 4 {
		return false, nil
	}

	swap, ok := p.decoder.Decode(common.HexToAddress(tx.To), data, parseBig(tx.Value))
	if !ok {
		return false, nil
	}

	inMeta := p.resolver.Resolve(ctx, common.HexToAddress(swap.TokenIn()))
	outMeta := p.resolver.Resolve(ctx, common.HexToAddress(swap.TokenOut()))

	assessment := p.assessor.Assess(ctx, swap)

	record := buildAlertRecord(tx, swap, assessment, inMeta, outMeta, parseBig(tx.GasPrice), time.Now())
	if err := p.sink.Publish(ctx, record); err != nil {
		return true, fmt.Errorf("publish %s: %w", tx.Hash, err)
	}

	p.logger.Debug("swap assessed",
		zap.String("tx", tx.Hash),
		zap.String("venue", string(swap.Venue)),
		zap.Int("score", assessment.Score),
		zap.String("level", string(assessment.Level)))
	return true, nil
}

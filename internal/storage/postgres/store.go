package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"swapScope/internal/model"
)

// Store provides Postgres persistence for alert records.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutAlertBatch satisfies storage.Storage.
func (s *Store) PutAlertBatch(alerts []model.AlertRecord) error {
	return s.InsertAlerts(context.Background(), alerts)
}

// InsertAlerts appends alert records. Re-observed transactions replace
// their previous row so a replayed feed stays idempotent.
func (s *Store) InsertAlerts(ctx context.Context, alerts []model.AlertRecord) error {
	if len(alerts) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, a := range alerts {
		batch.Queue(`
			INSERT INTO swap_alerts (
				tx_hash, sender, router, venue, method,
				token_in, token_out, symbol_in, symbol_out,
				amount_in, min_out, expected_out, gas_price_gwei,
				score, level, price_impact_bps, ticks_crossed,
				pool_share_bps, user_slippage_bps, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
			ON CONFLICT (tx_hash)
			DO UPDATE SET
				score = EXCLUDED.score,
				level = EXCLUDED.level,
				price_impact_bps = EXCLUDED.price_impact_bps,
				ticks_crossed = EXCLUDED.ticks_crossed,
				pool_share_bps = EXCLUDED.pool_share_bps,
				user_slippage_bps = EXCLUDED.user_slippage_bps,
				expected_out = EXCLUDED.expected_out,
				created_at = EXCLUDED.created_at
		`,
			a.TxHash,
			a.From,
			string(a.Router),
			string(a.Venue),
			a.Method,
			a.TokenIn,
			a.TokenOut,
			a.SymbolIn,
			a.SymbolOut,
			a.AmountIn,
			a.MinOut,
			a.ExpectedOut,
			a.GasPriceGwei,
			a.Score,
			string(a.Level),
			a.PriceImpactBps,
			a.TicksCrossed,
			a.PoolShareBps,
			a.UserSlippageBps,
			a.CreatedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range alerts {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

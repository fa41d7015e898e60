package journal

import (
	"context"
	"time"

	"bybit_bot/internal/models"
	"bybit_bot/pkg/db"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS monitor_sessions (
	id           BIGSERIAL PRIMARY KEY,
	order_id     TEXT        NOT NULL,
	symbol       TEXT        NOT NULL,
	recipient    BIGINT      NOT NULL,
	state        TEXT        NOT NULL,
	entry_price  DOUBLE PRECISION NOT NULL,
	last_price   DOUBLE PRECISION NOT NULL,
	profit_pct   DOUBLE PRECISION NOT NULL,
	size         TEXT        NOT NULL,
	failed_polls INTEGER     NOT NULL,
	started_at   TIMESTAMPTZ NOT NULL,
	finished_at  TIMESTAMPTZ NULL
)`

const insertSQL = `
INSERT INTO monitor_sessions (
	order_id, symbol, recipient, state, entry_price, last_price,
	profit_pct, size, failed_polls, started_at, finished_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// PG пишет завершённые сессии в monitor_sessions.
type PG struct {
	db db.TxManager
}

func NewPG(tx db.TxManager) *PG {
	return &PG{db: tx}
}

// EnsureSchema создаёт таблицу, если её ещё нет.
func (p *PG) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Conn().Exec(ctx, schemaSQL); err != nil {
		return errors.Wrap(err, "journal.EnsureSchema")
	}
	return nil
}

func (p *PG) Record(ctx context.Context, s models.MonitorSession) (err error) {
	defer func() {
		if err != nil {
			err = errors.Wrapf(err, "journal.Record order=%s", s.OrderID)
		}
	}()

	return p.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertSQL,
			s.OrderID,
			s.Symbol,
			s.Recipient,
			string(s.State),
			s.EntryPrice,
			s.LastPrice,
			s.ProfitPct,
			s.Size,
			s.FailedPolls,
			s.StartedAt,
			nullTime(s.FinishedAt),
		)
		return err
	})
}

// прерванная остановкой сессия не имеет finished_at
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

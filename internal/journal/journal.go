package journal

import (
	"context"
	"time"

	"bybit_bot/internal/models"
	"bybit_bot/pkg/logger"
)

// Log пишет итог сессии в лог, без базы.
type Log struct{}

func NewLog() *Log { return &Log{} }

func (l *Log) Record(_ context.Context, s models.MonitorSession) error {
	logger.Info("[%s] сессия order=%s завершена: %s, вход %v, выход %v, прибыль %.4f%%, длительность %s",
		s.Symbol, s.OrderID, s.State, s.EntryPrice, s.LastPrice, s.ProfitPct, duration(s))
	return nil
}

func duration(s models.MonitorSession) string {
	if s.FinishedAt.IsZero() {
		return "-"
	}
	return s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond).String()
}

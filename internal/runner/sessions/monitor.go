package sessions

import (
	"context"
	"fmt"
	"time"

	"bybit_bot/internal/models"
	"bybit_bot/internal/notify"
	"bybit_bot/pkg/logger"
)

// Exchange: то, что монитору нужно от биржи.
type Exchange interface {
	GetPosition(ctx context.Context, symbol string) (models.Position, error)
	GetLatestPrice(ctx context.Context, symbol string) (models.PriceSnapshot, error)
	ClosePositionMarket(ctx context.Context, symbol, qty string) error
}

type Options struct {
	PollInterval time.Duration
	// TargetProfit в процентах.
	TargetProfit float64
	// MaxFailedPolls: сколько неудачных опросов подряд терпим, 0 без лимита.
	MaxFailedPolls int
}

// Monitor ведёт одну позицию: STARTING → MONITORING → CLOSING → CLOSED/ABORTED.
// Run вызывается ровно один раз; сессию трогает только его горутина.
type Monitor struct {
	ex   Exchange
	n    notify.Notifier
	opts Options
	now  func() time.Time

	s models.MonitorSession
}

func NewMonitor(ex Exchange, n notify.Notifier, opts Options, orderID, symbol string, recipient int64) *Monitor {
	return &Monitor{
		ex:   ex,
		n:    n,
		opts: opts,
		now:  time.Now,
		s: models.MonitorSession{
			OrderID:   orderID,
			Symbol:    symbol,
			Recipient: recipient,
			State:     models.StateStarting,
		},
	}
}

// Run крутит автомат до терминального состояния или отмены ctx
// (остановка процесса) и возвращает итог сессии.
func (m *Monitor) Run(ctx context.Context) models.MonitorSession {
	m.s.StartedAt = m.now()
	logger.Info("[%s] начало мониторинга позиции, order=%s", m.s.Symbol, m.s.OrderID)

	m.start(ctx)
	if m.s.State == models.StateMonitoring {
		m.monitor(ctx)
	}
	if m.s.State == models.StateClosing {
		m.close(ctx)
	}

	if m.s.State.Terminal() {
		m.s.FinishedAt = m.now()
	} else {
		logger.Warn("[%s] мониторинг order=%s прерван в состоянии %s", m.s.Symbol, m.s.OrderID, m.s.State)
	}
	return m.s
}

func (m *Monitor) start(ctx context.Context) {
	// размер не критичен: уйдёт в close как есть, даже пустым
	pos, err := m.ex.GetPosition(ctx, m.s.Symbol)
	if err != nil {
		logger.Warn("[%s] размер позиции не получен: %v", m.s.Symbol, err)
	}
	m.s.Size = pos.Size

	snap, err := m.ex.GetLatestPrice(ctx, m.s.Symbol)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Error("[%s] не удалось получить начальную цену: %v", m.s.Symbol, err)
		m.notify(ctx, "❌ Не удалось получить начальную цену для мониторинга.")
		m.transition(models.StateAborted)
		return
	}

	m.s.EntryPrice = snap.LatestPrice
	m.s.LastPrice = snap.LatestPrice
	logger.Info("[%s] начальная цена %v USD, size=%q", m.s.Symbol, m.s.EntryPrice, m.s.Size)
	m.transition(models.StateMonitoring)
}

func (m *Monitor) monitor(ctx context.Context) {
	ticker := time.NewTicker(m.opts.PollInterval)
	defer ticker.Stop()

	for m.s.State == models.StateMonitoring {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.poll(ctx)
		}
	}
}

// poll: один шаг MONITORING.
func (m *Monitor) poll(ctx context.Context) {
	snap, err := m.ex.GetLatestPrice(ctx, m.s.Symbol)
	if err != nil {
		// остановка процесса оборвала запрос: это не сбой биржи
		if ctx.Err() != nil {
			return
		}
		m.s.FailedPolls++
		failedPolls.WithLabelValues(m.s.Symbol).Inc()
		logger.Warn("[%s] не удалось получить текущую цену (%d подряд): %v", m.s.Symbol, m.s.FailedPolls, err)
		m.notify(ctx, "⚠️ Не удалось получить текущую цену. Пропуск проверки.")

		if m.opts.MaxFailedPolls > 0 && m.s.FailedPolls >= m.opts.MaxFailedPolls {
			m.notify(ctx, fmt.Sprintf("❌ Мониторинг остановлен: цена недоступна %d раз подряд. ID ордера: %s",
				m.s.FailedPolls, m.s.OrderID))
			m.transition(models.StateAborted)
		}
		return
	}

	m.s.FailedPolls = 0
	m.s.LastPrice = snap.LatestPrice
	m.s.ProfitPct = ProfitPct(m.s.EntryPrice, snap.LatestPrice)
	logger.Info("[%s] текущая цена %v USD, прибыль %.4f%%", m.s.Symbol, snap.LatestPrice, m.s.ProfitPct)

	if m.s.ProfitPct >= m.opts.TargetProfit {
		m.transition(models.StateClosing)
	}
}

func (m *Monitor) close(ctx context.Context) {
	logger.Info("[%s] закрытие позиции order=%s по цене %v, прибыль %.2f%%",
		m.s.Symbol, m.s.OrderID, m.s.LastPrice, m.s.ProfitPct)

	if err := m.ex.ClosePositionMarket(ctx, m.s.Symbol, m.s.Size); err != nil {
		logger.Error("[%s] не удалось закрыть позицию order=%s: %v", m.s.Symbol, m.s.OrderID, err)
		m.notify(ctx, "❌ Не удалось закрыть позицию.")
		m.transition(models.StateAborted)
		return
	}

	m.notify(ctx, fmt.Sprintf("✅ Позиция закрыта с прибылью %.2f%%. ID ордера: %s", m.s.ProfitPct, m.s.OrderID))
	m.transition(models.StateClosed)
}

func (m *Monitor) transition(to models.SessionState) {
	if m.s.State.Terminal() {
		return
	}
	logger.Info("[%s] order=%s %s -> %s", m.s.Symbol, m.s.OrderID, m.s.State, to)
	m.s.State = to
	transitionsTotal.WithLabelValues(string(to)).Inc()
}

// notify: ошибки доставки не влияют на сессию.
func (m *Monitor) notify(ctx context.Context, msg string) {
	if err := m.n.Send(ctx, m.s.Recipient, msg); err != nil {
		logger.Warn("[%s] уведомление не доставлено: %v", m.s.Symbol, err)
	}
}

// ProfitPct: изменение цены от входа в процентах.
func ProfitPct(entry, current float64) float64 {
	return (current - entry) / entry * 100
}

package runner

import (
	"context"
	"sync"
	"time"

	"bybit_bot/internal/models"
	"bybit_bot/internal/modules/config"
	"bybit_bot/internal/notify"
	"bybit_bot/internal/runner/sessions"
	"bybit_bot/pkg/logger"

	"github.com/pkg/errors"
)

const journalTimeout = 5 * time.Second

var (
	ErrStopped        = errors.New("manager stopped")
	ErrAlreadyWatched = errors.New("order already monitored")
	// ErrNotMonitored: ордер на бирже размещён, но монитор не запущен.
	ErrNotMonitored = errors.New("position opened but not monitored")
)

// Exchange нужна менеджеру целиком: открытие плюс всё для монитора.
type Exchange interface {
	sessions.Exchange
	OpenPosition(ctx context.Context, symbol string) (string, error)
}

// Journal сохраняет итог завершённой сессии.
type Journal interface {
	Record(ctx context.Context, s models.MonitorSession) error
}

// Manager держит мониторы: по горутине на открытую позицию.
// Мониторы не делят состояние, общий у них только клиент биржи.
type Manager struct {
	ex   Exchange
	n    notify.Notifier
	j    Journal
	opts sessions.Options

	// ctx живёт до Stop; от него считаются все мониторы
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	active  map[string]string // orderID -> symbol
	stopped bool
	wg      sync.WaitGroup
}

func NewManager(cfg *config.Config, ex Exchange, n notify.Notifier, j Journal) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		ex: ex,
		n:  n,
		j:  j,
		opts: sessions.Options{
			PollInterval:   cfg.Trading.PollInterval,
			TargetProfit:   cfg.Trading.TargetProfit,
			MaxFailedPolls: cfg.Trading.MaxFailedPolls,
		},
		ctx:    ctx,
		cancel: cancel,
		active: make(map[string]string),
	}
}

// OpenPosition открывает позицию и сразу ставит её на мониторинг.
// Ошибка без orderId: позиция не открыта. С orderId и ErrNotMonitored:
// позиция открыта, но следить за ней некому.
func (m *Manager) OpenPosition(ctx context.Context, symbol string, recipient int64) (string, error) {
	if m.isStopped() {
		return "", ErrStopped
	}

	orderID, err := m.ex.OpenPosition(ctx, symbol)
	if err != nil {
		return "", errors.Wrapf(err, "open position %s", symbol)
	}
	logger.Info("[%s] ордер размещён, id=%s, получатель %d", symbol, orderID, recipient)

	if err := m.StartMonitoring(orderID, symbol, recipient); err != nil {
		logger.Error("[%s] ордер %s размещён, монитор не запущен: %v", symbol, orderID, err)
		return orderID, errors.Wrapf(ErrNotMonitored, "order %s: %v", orderID, err)
	}
	return orderID, nil
}

// StartMonitoring запускает монитор для уже открытой позиции.
func (m *Manager) StartMonitoring(orderID, symbol string, recipient int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stopped {
		return ErrStopped
	}
	if _, ok := m.active[orderID]; ok {
		return errors.Wrapf(ErrAlreadyWatched, "order %s", orderID)
	}

	m.active[orderID] = symbol
	activeSessions.Inc()
	m.wg.Add(1)

	mon := sessions.NewMonitor(m.ex, m.n, m.opts, orderID, symbol, recipient)
	go m.run(mon, orderID)
	return nil
}

func (m *Manager) run(mon *sessions.Monitor, orderID string) {
	defer m.wg.Done()

	s := mon.Run(m.ctx)

	m.mu.Lock()
	delete(m.active, orderID)
	m.mu.Unlock()
	activeSessions.Dec()

	// ctx менеджера к этому моменту может быть уже отменён
	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	if err := m.j.Record(ctx, s); err != nil {
		logger.Error("[%s] не удалось записать сессию order=%s в журнал: %v", s.Symbol, s.OrderID, err)
	}
}

// Active: число работающих мониторов.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Wait ждёт, пока завершатся все мониторы.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Stop отменяет мониторы и ждёт их завершения не дольше ctx.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
	m.cancel()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "wait monitors")
	}
}

func (m *Manager) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"bybit_bot/internal/models"
	"bybit_bot/internal/modules/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubExchange: цена растёт на 1% за каждый запрос по символу.
type stubExchange struct {
	mu       sync.Mutex
	onOpen   func()
	openErr  error
	flat     bool
	calls    map[string]int
	opened   []string
	closed   []string
	orderSeq int
}

func newStubExchange() *stubExchange {
	return &stubExchange{calls: make(map[string]int)}
}

func (s *stubExchange) OpenPosition(_ context.Context, symbol string) (string, error) {
	if s.onOpen != nil {
		s.onOpen()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return "", s.openErr
	}
	s.orderSeq++
	s.opened = append(s.opened, symbol)
	return fmt.Sprintf("order-%d", s.orderSeq), nil
}

func (s *stubExchange) GetPosition(_ context.Context, symbol string) (models.Position, error) {
	return models.Position{Symbol: symbol, Size: "0.001"}, nil
}

func (s *stubExchange) GetLatestPrice(_ context.Context, symbol string) (models.PriceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.calls[symbol]
	s.calls[symbol]++
	if s.flat {
		n = 0
	}
	return models.PriceSnapshot{Symbol: symbol, LatestPrice: 100 * (1 + 0.01*float64(n))}, nil
}

func (s *stubExchange) ClosePositionMarket(_ context.Context, symbol, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = append(s.closed, symbol)
	return nil
}

type nopNotifier struct{}

func (nopNotifier) Send(context.Context, int64, string) error { return nil }

type memJournal struct {
	mu   sync.Mutex
	recs []models.MonitorSession
	err  error
}

func (j *memJournal) Record(ctx context.Context, s models.MonitorSession) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.recs = append(j.recs, s)
	return j.err
}

func (j *memJournal) records() []models.MonitorSession {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]models.MonitorSession(nil), j.recs...)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Trading.PollInterval = time.Millisecond
	cfg.Trading.TargetProfit = 2.5
	return cfg
}

func TestOpenPositionStartsMonitor(t *testing.T) {
	ex := newStubExchange()
	j := &memJournal{}
	m := NewManager(testConfig(), ex, nopNotifier{}, j)

	orderID, err := m.OpenPosition(context.Background(), "ETHUSDT", 7)
	require.NoError(t, err)
	assert.Equal(t, "order-1", orderID)

	m.Wait()

	recs := j.records()
	require.Len(t, recs, 1)
	assert.Equal(t, "order-1", recs[0].OrderID)
	assert.Equal(t, "ETHUSDT", recs[0].Symbol)
	assert.Equal(t, int64(7), recs[0].Recipient)
	assert.Equal(t, models.StateClosed, recs[0].State)
	assert.Equal(t, []string{"ETHUSDT"}, ex.closed)
	assert.Zero(t, m.Active())
}

func TestOpenPositionFailureStartsNothing(t *testing.T) {
	ex := newStubExchange()
	ex.openErr = errors.New("insufficient balance")
	j := &memJournal{}
	m := NewManager(testConfig(), ex, nopNotifier{}, j)

	orderID, err := m.OpenPosition(context.Background(), "BTCUSDT", 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ex.openErr)
	assert.Empty(t, orderID)

	m.Wait()
	assert.Empty(t, j.records())
	assert.Zero(t, m.Active())
}

func TestStartMonitoringRejectsDuplicateOrder(t *testing.T) {
	ex := newStubExchange()
	ex.flat = true
	m := NewManager(testConfig(), ex, nopNotifier{}, &memJournal{})
	defer func() { _ = m.Stop(context.Background()) }()

	require.NoError(t, m.StartMonitoring("order-1", "BTCUSDT", 1))
	err := m.StartMonitoring("order-1", "BTCUSDT", 1)
	assert.ErrorIs(t, err, ErrAlreadyWatched)
	assert.Equal(t, 1, m.Active())
}

func TestManySessionsRunIndependently(t *testing.T) {
	ex := newStubExchange()
	j := &memJournal{}
	m := NewManager(testConfig(), ex, nopNotifier{}, j)

	symbols := []string{"BTCUSDT", "ETHUSDT", "XRPUSDT", "SOLUSDT", "DOGEUSDT"}
	for i, sym := range symbols {
		_, err := m.OpenPosition(context.Background(), sym, int64(i))
		require.NoError(t, err)
	}
	m.Wait()

	recs := j.records()
	require.Len(t, recs, len(symbols))
	for _, r := range recs {
		assert.Equal(t, models.StateClosed, r.State, r.Symbol)
		assert.Equal(t, 100.0, r.EntryPrice, r.Symbol)
		assert.GreaterOrEqual(t, r.ProfitPct, 2.5, r.Symbol)
	}
	assert.ElementsMatch(t, symbols, ex.closed)
}

func TestStopCancelsMonitorsAndRejectsNewOnes(t *testing.T) {
	ex := newStubExchange()
	ex.flat = true
	j := &memJournal{}
	m := NewManager(testConfig(), ex, nopNotifier{}, j)

	_, err := m.OpenPosition(context.Background(), "BTCUSDT", 1)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return m.Active() == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Stop(ctx))

	assert.Zero(t, m.Active())
	recs := j.records()
	require.Len(t, recs, 1, "interrupted session still reaches the journal")
	assert.Equal(t, models.StateMonitoring, recs[0].State)
	assert.Empty(t, ex.closed)

	_, err = m.OpenPosition(context.Background(), "ETHUSDT", 1)
	assert.ErrorIs(t, err, ErrStopped)
	assert.ErrorIs(t, m.StartMonitoring("x", "ETHUSDT", 1), ErrStopped)
}

func TestJournalErrorIsNotFatal(t *testing.T) {
	ex := newStubExchange()
	j := &memJournal{err: errors.New("db down")}
	m := NewManager(testConfig(), ex, nopNotifier{}, j)

	_, err := m.OpenPosition(context.Background(), "BTCUSDT", 1)
	require.NoError(t, err)
	m.Wait()

	assert.Len(t, j.records(), 1)
	assert.Zero(t, m.Active())
}

func TestStopBetweenOpenAndMonitorKeepsOrderID(t *testing.T) {
	ex := newStubExchange()
	j := &memJournal{}
	m := NewManager(testConfig(), ex, nopNotifier{}, j)
	ex.onOpen = func() { _ = m.Stop(context.Background()) }

	orderID, err := m.OpenPosition(context.Background(), "BTCUSDT", 1)

	assert.Equal(t, "order-1", orderID, "the order is on the exchange")
	assert.ErrorIs(t, err, ErrNotMonitored)
	assert.Zero(t, m.Active())
	assert.Empty(t, j.records())
}

package models

import (
	"time"
)

type SessionState string

const (
	StateStarting   SessionState = "STARTING"
	StateMonitoring SessionState = "MONITORING"
	StateClosing    SessionState = "CLOSING"
	StateClosed     SessionState = "CLOSED"
	StateAborted    SessionState = "ABORTED"
)

// Terminal: из CLOSED/ABORTED переходов нет.
func (s SessionState) Terminal() bool {
	return s == StateClosed || s == StateAborted
}

// MonitorSession: состояние одной отслеживаемой позиции.
// Принадлежит ровно одной горутине монитора.
type MonitorSession struct {
	OrderID   string
	Symbol    string
	Recipient int64

	// EntryPrice: lastPrice первого тикера после открытия, не цена исполнения.
	EntryPrice float64
	Size       string
	State      SessionState

	LastPrice   float64
	ProfitPct   float64
	FailedPolls int

	StartedAt  time.Time
	FinishedAt time.Time
}

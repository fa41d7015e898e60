package models

// Position: открытая позиция по символу.
// Size хранится строкой биржи и уходит в закрывающий ордер как есть.
type Position struct {
	Symbol   string
	Side     string // Buy/Sell
	Size     string
	AvgPrice float64
}

package models

// PriceSnapshot: один срез тикера. Каждый запрос даёт новый, старый не меняется.
type PriceSnapshot struct {
	Symbol      string
	LatestPrice float64
	High24h     float64
	Low24h      float64
	Volume24h   float64
}

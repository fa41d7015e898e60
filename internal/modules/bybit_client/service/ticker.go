package service

import (
	"context"
	"net/http"
	"time"

	"bybit_bot/internal/models"
)

const opGetLatestPrice = "get_latest_price"

// GetLatestPrice читает публичный тикер, подпись не нужна.
func (c *Client) GetLatestPrice(ctx context.Context, symbol string) (snap models.PriceSnapshot, err error) {
	started := time.Now()
	defer func() { finish(opGetLatestPrice, started, err) }()

	params := map[string]string{
		"category": categoryLinear,
		"symbol":   symbol,
	}
	res, err := call[listResult[tickerItem]](ctx, c, opGetLatestPrice, http.MethodGet, pathTickers, params)
	if err != nil {
		return models.PriceSnapshot{}, err
	}
	if len(res.List) == 0 {
		return models.PriceSnapshot{}, &DataShapeError{Op: opGetLatestPrice, Field: "list", Reason: "empty"}
	}

	t := res.List[0]
	snap.Symbol = symbol
	if snap.LatestPrice, err = requiredFloat(opGetLatestPrice, "lastPrice", t.LastPrice); err != nil {
		return models.PriceSnapshot{}, err
	}
	// на нулевой цене не посчитать ни размер ордера, ни профит
	if snap.LatestPrice == 0 {
		return models.PriceSnapshot{}, &DataShapeError{Op: opGetLatestPrice, Field: "lastPrice", Reason: "zero"}
	}
	if snap.High24h, err = requiredFloat(opGetLatestPrice, "highPrice24h", t.HighPrice24h); err != nil {
		return models.PriceSnapshot{}, err
	}
	if snap.Low24h, err = requiredFloat(opGetLatestPrice, "lowPrice24h", t.LowPrice24h); err != nil {
		return models.PriceSnapshot{}, err
	}
	if snap.Volume24h, err = requiredFloat(opGetLatestPrice, "volume24h", t.Volume24h); err != nil {
		return models.PriceSnapshot{}, err
	}
	return snap, nil
}

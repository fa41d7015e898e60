package service

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"bybit_bot/internal/models"
)

const (
	opOpenPosition  = "open_position"
	opClosePosition = "close_position"

	presetMinSize = 0.001
	minNotional   = 100.0
)

// OrderQty считает размер ордера: не меньше настроенного, не меньше presetMinSize
// и не меньше minNotional по текущей цене. Округление до 3 знаков.
func OrderQty(configured, price float64) float64 {
	minSize := math.Max(presetMinSize, minNotional/price)
	return math.Round(math.Max(configured, minSize)*1000) / 1000
}

// FormatQty: кратчайшая десятичная запись, одна и та же для подписи и отправки.
func FormatQty(qty float64) string {
	return strconv.FormatFloat(qty, 'f', -1, 64)
}

// OpenPosition открывает market buy по символу и возвращает orderId.
func (c *Client) OpenPosition(ctx context.Context, symbol string) (orderID string, err error) {
	started := time.Now()
	defer func() { finish(opOpenPosition, started, err) }()

	snap, err := c.GetLatestPrice(ctx, symbol)
	if err != nil {
		return "", err
	}

	qty := OrderQty(c.orderSize, snap.LatestPrice)
	res, err := c.createMarketOrder(ctx, opOpenPosition, symbol, models.OrderSideBuy, FormatQty(qty))
	if err != nil {
		return "", err
	}
	// без orderId мониторить нечего
	if res.OrderID == "" {
		return "", &DataShapeError{Op: opOpenPosition, Field: "orderId", Reason: "missing"}
	}
	return res.OrderID, nil
}

// ClosePositionMarket продаёт qty по рынку. nil: биржа приняла ордер (retCode 0),
// orderId в ответе не проверяется.
func (c *Client) ClosePositionMarket(ctx context.Context, symbol, qty string) (err error) {
	started := time.Now()
	defer func() { finish(opClosePosition, started, err) }()

	_, err = c.createMarketOrder(ctx, opClosePosition, symbol, models.OrderSideSell, qty)
	return err
}

func (c *Client) createMarketOrder(ctx context.Context, op, symbol string, side models.OrderSide, qty string) (*createOrderResult, error) {
	params := c.signed(map[string]string{
		"category":    categoryLinear,
		"symbol":      symbol,
		"side":        string(side),
		"orderType":   "Market",
		"qty":         qty,
		"timeInForce": "GTC",
	})
	return call[createOrderResult](ctx, c, op, http.MethodPost, pathOrderCreate, params)
}

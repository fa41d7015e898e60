package service

import (
	"context"
	"net/http"
	"time"

	"bybit_bot/internal/models"
)

const opGetOrderHistory = "get_order_history"

// GetOrderHistory: история ордеров по символу в порядке биржи.
func (c *Client) GetOrderHistory(ctx context.Context, symbol string) (orders []models.Order, err error) {
	started := time.Now()
	defer func() { finish(opGetOrderHistory, started, err) }()

	params := c.signed(map[string]string{
		"category": categoryLinear,
		"symbol":   symbol,
	})
	res, err := call[listResult[orderItem]](ctx, c, opGetOrderHistory, http.MethodGet, pathOrderHistory, params)
	if err != nil {
		return nil, err
	}
	if len(res.List) == 0 {
		return nil, &DataShapeError{Op: opGetOrderHistory, Field: "list", Reason: "empty"}
	}

	orders = make([]models.Order, 0, len(res.List))
	for _, o := range res.List {
		orders = append(orders, models.Order{
			OrderID:            o.OrderID,
			Symbol:             o.Symbol,
			OrderType:          o.OrderType,
			Side:               o.Side,
			Qty:                o.Qty,
			AvgPrice:           o.AvgPrice,
			Price:              o.Price,
			OrderStatus:        o.OrderStatus,
			TimeInForce:        o.TimeInForce,
			CumExecQty:         o.CumExecQty,
			CumExecValue:       o.CumExecValue,
			CumExecFee:         o.CumExecFee,
			CreatedTime:        o.CreatedTime,
			LastPriceOnCreated: o.LastPriceOnCreated,
			UpdatedTime:        o.UpdatedTime,
		})
	}
	return orders, nil
}

package service

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"bybit_bot/internal/models"
)

const opGetPosition = "get_position"

// GetPosition возвращает первую позицию по символу.
func (c *Client) GetPosition(ctx context.Context, symbol string) (pos models.Position, err error) {
	started := time.Now()
	defer func() { finish(opGetPosition, started, err) }()

	params := c.signed(map[string]string{
		"category": categoryLinear,
		"symbol":   symbol,
	})
	res, err := call[listResult[positionItem]](ctx, c, opGetPosition, http.MethodGet, pathPositionList, params)
	if err != nil {
		return models.Position{}, err
	}
	if len(res.List) == 0 {
		return models.Position{}, &DataShapeError{Op: opGetPosition, Field: "list", Reason: "empty"}
	}

	item := res.List[0]
	pos = models.Position{
		Symbol: item.Symbol,
		Side:   item.Side,
	}
	// size отдаём как есть, даже пустым: монитор решает сам
	if item.Size != nil {
		pos.Size = *item.Size
	}
	pos.AvgPrice, _ = strconv.ParseFloat(item.AvgPrice, 64)
	return pos, nil
}

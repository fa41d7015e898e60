package service

import (
	"context"
	"net/http"
	"time"
)

const opGetBalance = "get_balance"

// GetBalance: totalAvailableBalance первого аккаунта из wallet-balance.
func (c *Client) GetBalance(ctx context.Context) (balance float64, err error) {
	started := time.Now()
	defer func() { finish(opGetBalance, started, err) }()

	params := c.signed(map[string]string{
		"accountType": c.accountType,
	})
	res, err := call[listResult[walletItem]](ctx, c, opGetBalance, http.MethodGet, pathWalletBalance, params)
	if err != nil {
		return 0, err
	}
	if len(res.List) == 0 {
		return 0, &DataShapeError{Op: opGetBalance, Field: "list", Reason: "empty"}
	}
	return requiredFloat(opGetBalance, "totalAvailableBalance", res.List[0].TotalAvailableBalance)
}

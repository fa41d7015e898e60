package service

import (
	"testing"

	"bybit_bot/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSymbolToPair(t *testing.T) {
	tests := map[string]string{
		"BTCUSDT": "BTC/USDT",
		"ETHUSDC": "ETH/USDC",
		"ETHBTC":  "ETH/BTC",
		"USDT":    "USDT",
		"WEIRD":   "WEIRD",
	}
	for in, want := range tests {
		assert.Equal(t, want, symbolToPair(in), in)
	}
}

func TestPairToSymbol(t *testing.T) {
	assert.Equal(t, "BTCUSDT", pairToSymbol("BTC/USDT"))
	assert.Equal(t, "ETHUSDT", pairToSymbol(" eth/usdt "))
}

func TestFormatOrderHasAllFields(t *testing.T) {
	o := models.Order{
		OrderID: "id-1", Symbol: "BTCUSDT", OrderType: "Market", Side: "Buy", Qty: "0.001",
		AvgPrice: "65000", Price: "0", OrderStatus: "Filled", TimeInForce: "IOC",
		CumExecQty: "0.001", CumExecValue: "65", CumExecFee: "0.03", CreatedTime: "1700000000000",
		LastPriceOnCreated: "64999", UpdatedTime: "1700000000100",
	}
	text := formatOrder(o)
	for _, v := range []string{"id-1", "Market", "Filled", "IOC", "0.03 USD", "64999 USD", "1700000000100"} {
		assert.Contains(t, text, v)
	}
}

func TestFormatBalance(t *testing.T) {
	assert.Equal(t, "Ваш текущий баланс: 0.10 USDT", formatBalance(0.1))
}

package models

// Order: запись истории ордеров. Поля числовые у Bybit приходят строками,
// фронт только показывает их, поэтому не парсим.
type Order struct {
	OrderID            string
	Symbol             string
	OrderType          string
	Side               string
	Qty                string
	AvgPrice           string
	Price              string
	OrderStatus        string
	TimeInForce        string
	CumExecQty         string
	CumExecValue       string
	CumExecFee         string
	CreatedTime        string
	LastPriceOnCreated string
	UpdatedTime        string
}

type OrderSide string

const (
	OrderSideBuy  OrderSide = "Buy"
	OrderSideSell OrderSide = "Sell"
)

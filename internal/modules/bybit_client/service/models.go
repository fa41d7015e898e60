package service

import (
	"math"
	"strconv"
)

// envelope: общий конверт ответа Bybit v5.
type envelope[T any] struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  *T     `json:"result"`
}

type listResult[T any] struct {
	Category string `json:"category"`
	List     []T    `json:"list"`
}

type positionItem struct {
	Symbol   string  `json:"symbol"`
	Side     string  `json:"side"`
	Size     *string `json:"size"`
	AvgPrice string  `json:"avgPrice"`
}

type orderItem struct {
	OrderID            string `json:"orderId"`
	Symbol             string `json:"symbol"`
	OrderType          string `json:"orderType"`
	Side               string `json:"side"`
	Qty                string `json:"qty"`
	AvgPrice           string `json:"avgPrice"`
	Price              string `json:"price"`
	OrderStatus        string `json:"orderStatus"`
	TimeInForce        string `json:"timeInForce"`
	CumExecQty         string `json:"cumExecQty"`
	CumExecValue       string `json:"cumExecValue"`
	CumExecFee         string `json:"cumExecFee"`
	CreatedTime        string `json:"createdTime"`
	LastPriceOnCreated string `json:"lastPriceOnCreated"`
	UpdatedTime        string `json:"updatedTime"`
}

type walletItem struct {
	AccountType           string  `json:"accountType"`
	TotalAvailableBalance *string `json:"totalAvailableBalance"`
}

type tickerItem struct {
	Symbol       string  `json:"symbol"`
	LastPrice    *string `json:"lastPrice"`
	HighPrice24h *string `json:"highPrice24h"`
	LowPrice24h  *string `json:"lowPrice24h"`
	Volume24h    *string `json:"volume24h"`
}

type createOrderResult struct {
	OrderID     string `json:"orderId"`
	OrderLinkID string `json:"orderLinkId"`
}

// requiredFloat парсит обязательное конечное неотрицательное число из строки биржи.
// ParseFloat принимает "NaN" и "Inf", их отсекаем отдельно.
func requiredFloat(op, field string, v *string) (float64, error) {
	if v == nil || *v == "" {
		return 0, &DataShapeError{Op: op, Field: field, Reason: "missing"}
	}
	f, err := strconv.ParseFloat(*v, 64)
	if err != nil {
		return 0, &DataShapeError{Op: op, Field: field, Reason: err.Error()}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &DataShapeError{Op: op, Field: field, Reason: "not finite"}
	}
	if f < 0 {
		return 0, &DataShapeError{Op: op, Field: field, Reason: "negative"}
	}
	return f, nil
}

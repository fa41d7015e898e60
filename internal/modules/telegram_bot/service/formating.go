package service

import (
	"fmt"

	"bybit_bot/internal/models"
)

func formatBalance(balance float64) string {
	return fmt.Sprintf("Ваш текущий баланс: %.2f USDT", balance)
}

func formatPrice(p models.PriceSnapshot) string {
	return fmt.Sprintf(
		"💹 *%s*\n\n"+
			"Цена: `%v` USD\n"+
			"Макс. 24ч: `%v` USD\n"+
			"Мин. 24ч: `%v` USD\n"+
			"Объём 24ч: `%v`\n",
		symbolToPair(p.Symbol),
		p.LatestPrice,
		p.High24h,
		p.Low24h,
		p.Volume24h,
	)
}

func formatOrder(o models.Order) string {
	return fmt.Sprintf(
		"📝 *Order Details*:\n"+
			"🔹 *Order ID*: %s\n"+
			"🔹 *Symbol*: %s\n"+
			"🔹 *Order Type*: %s\n"+
			"🔹 *Side*: %s\n"+
			"🔹 *Quantity*: %s\n"+
			"🔹 *Average Price*: %s USD\n"+
			"🔹 *Price*: %s USD\n"+
			"🔹 *Order Status*: %s\n"+
			"🔹 *Time in Force*: %s\n"+
			"🔹 *Cumulative Executed Quantity*: %s\n"+
			"🔹 *Cumulative Executed Value*: %s USD\n"+
			"🔹 *Cumulative Execution Fee*: %s USD\n"+
			"🔹 *Creation Time*: %s\n"+
			"🔹 *Last Price on Creation*: %s USD\n"+
			"🔹 *Updated Time*: %s\n",
		o.OrderID,
		o.Symbol,
		o.OrderType,
		o.Side,
		o.Qty,
		o.AvgPrice,
		o.Price,
		o.OrderStatus,
		o.TimeInForce,
		o.CumExecQty,
		o.CumExecValue,
		o.CumExecFee,
		o.CreatedTime,
		o.LastPriceOnCreated,
		o.UpdatedTime,
	)
}

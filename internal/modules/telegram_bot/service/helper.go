package service

import "strings"

var quoteAssets = []string{"USDT", "USDC", "BTC"}

// symbolToPair: BTCUSDT -> BTC/USDT.
func symbolToPair(symbol string) string {
	for _, q := range quoteAssets {
		if base, ok := strings.CutSuffix(symbol, q); ok && base != "" {
			return base + "/" + q
		}
	}
	return symbol
}

// pairToSymbol: BTC/USDT -> BTCUSDT.
func pairToSymbol(pair string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(pair), "/", ""))
}

// knownSymbol: пара из кнопки есть в списке настроенных.
func (t *Telegram) knownSymbol(text string) (string, bool) {
	if !strings.Contains(text, "/") {
		return "", false
	}
	symbol := pairToSymbol(text)
	for _, s := range t.pairs {
		if s == symbol {
			return symbol, true
		}
	}
	return "", false
}

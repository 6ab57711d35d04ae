package upbit

import (
	"upbit-client/pkg/domain/model"

	"github.com/shopspring/decimal"
)

// krwTicks KRW建ての価格帯別呼値。upper は各帯の上限（含む）
var krwTicks = []struct {
	upper decimal.Decimal
	tick  decimal.Decimal
}{
	{decimal.NewFromInt(10), decimal.RequireFromString("0.01")},
	{decimal.NewFromInt(100), decimal.RequireFromString("0.1")},
	{decimal.NewFromInt(1000), decimal.NewFromInt(1)},
	{decimal.NewFromInt(10000), decimal.NewFromInt(5)},
	{decimal.NewFromInt(100000), decimal.NewFromInt(10)},
	{decimal.NewFromInt(500000), decimal.NewFromInt(50)},
	{decimal.NewFromInt(1000000), decimal.NewFromInt(100)},
	{decimal.NewFromInt(2000000), decimal.NewFromInt(500)},
}

// krwTickAbove 2,000,000 KRW 超に適用する呼値
var krwTickAbove = decimal.NewFromInt(1000)

var (
	minTotalKRW    = decimal.NewFromInt(500)
	minTotalCrypto = decimal.RequireFromString("0.0005")
)

func krwTickOf(price decimal.Decimal) decimal.Decimal {
	for _, t := range krwTicks {
		if price.LessThanOrEqual(t.upper) {
			return t.tick
		}
	}
	return krwTickAbove
}

// IsValidPrice 注文価格が決済通貨毎の呼値の単位に乗っているかを検証する。
// KRW建ては価格帯別の呼値の倍数、BTC/ETH建ては小数第8位まで、
// USDT建ては小数第3位までを許容する
func IsValidPrice(market string, price decimal.Decimal) (bool, error) {
	switch model.QuoteOf(market) {
	case model.QuoteKRW:
		return price.Mod(krwTickOf(price)).IsZero(), nil
	case model.QuoteBTC, model.QuoteETH:
		return price.Equal(price.Truncate(8)), nil
	case model.QuoteUSDT:
		return price.Equal(price.Truncate(3)), nil
	default:
		return false, &UnsupportedQuoteCurrencyError{Market: market}
	}
}

// IsAboveMinimum 注文金額（価格×数量）が決済通貨毎の最低注文額以上かを検証する
func IsAboveMinimum(market string, price, volume decimal.Decimal) (bool, error) {
	total := price.Mul(volume)
	switch model.QuoteOf(market) {
	case model.QuoteKRW:
		return total.GreaterThanOrEqual(minTotalKRW), nil
	case model.QuoteBTC, model.QuoteETH, model.QuoteUSDT:
		return total.GreaterThanOrEqual(minTotalCrypto), nil
	default:
		return false, &UnsupportedQuoteCurrencyError{Market: market}
	}
}

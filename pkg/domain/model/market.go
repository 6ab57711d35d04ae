package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// QuoteCurrency マーケットシンボルの決済通貨
type QuoteCurrency int

const (
	QuoteUnsupported QuoteCurrency = iota
	QuoteKRW
	QuoteBTC
	QuoteETH
	QuoteUSDT
)

func (q QuoteCurrency) String() string {
	switch q {
	case QuoteKRW:
		return "KRW"
	case QuoteBTC:
		return "BTC"
	case QuoteETH:
		return "ETH"
	case QuoteUSDT:
		return "USDT"
	}
	return "UNSUPPORTED"
}

// QuoteOf "KRW-BTC" 形式のシンボルから決済通貨を判定する
func QuoteOf(market string) QuoteCurrency {
	switch strings.SplitN(market, "-", 2)[0] {
	case "KRW":
		return QuoteKRW
	case "BTC":
		return QuoteBTC
	case "ETH":
		return QuoteETH
	case "USDT":
		return QuoteUSDT
	}
	return QuoteUnsupported
}

// OrderSide 注文方向
type OrderSide string

const (
	Bid OrderSide = "bid"
	Ask OrderSide = "ask"
)

func (s OrderSide) Valid() bool {
	return s == Bid || s == Ask
}

// OrderType 注文種別
type OrderType string

const (
	Limit      OrderType = "limit"
	MarketBuy  OrderType = "price"
	MarketSell OrderType = "market"
)

func (t OrderType) Valid() bool {
	return t == Limit || t == MarketBuy || t == MarketSell
}

// OrderState 注文状態
type OrderState string

const (
	StateWait   OrderState = "wait"
	StateDone   OrderState = "done"
	StateCancel OrderState = "cancel"
)

func (s OrderState) Valid() bool {
	return s == StateWait || s == StateDone || s == StateCancel
}

// SortOrder 一覧取得時のソート順
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

func (s SortOrder) Valid() bool {
	return s == Asc || s == Desc
}

// OrderRequest 新規注文
type OrderRequest struct {
	Market string
	Side   OrderSide
	Price  decimal.Decimal
	Volume decimal.Decimal
	// Type 省略時は limit として扱う
	Type OrderType
	// Identifier クライアント側で採番する注文識別子（任意）
	Identifier string
}

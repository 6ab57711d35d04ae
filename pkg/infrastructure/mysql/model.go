package mysql

import (
	"time"
	"upbit-client/pkg/infrastructure/upbit"
)

// Ticker マーケット毎の現在値スナップショット
type Ticker struct {
	ID                uint64
	Market            string
	TradePrice        float64
	OpeningPrice      float64
	HighPrice         float64
	LowPrice          float64
	SignedChangeRate  float64
	AccTradePrice24h  float64
	AccTradeVolume24h float64
	RecordedAt        time.Time
}

// NewTicker 取得した現在値からレコードを生成
func NewTicker(org *upbit.Ticker, recordedAt time.Time) *Ticker {
	return &Ticker{
		Market:            org.Market,
		TradePrice:        org.TradePrice,
		OpeningPrice:      org.OpeningPrice,
		HighPrice:         org.HighPrice,
		LowPrice:          org.LowPrice,
		SignedChangeRate:  org.SignedChangeRate,
		AccTradePrice24h:  org.AccTradePrice24h,
		AccTradeVolume24h: org.AccTradeVolume24h,
		RecordedAt:        recordedAt,
	}
}

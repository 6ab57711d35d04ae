package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Client MySQL用クライアント
type Client struct {
	db *gorm.DB
}

// NewClient MySQL用クライアントの生成
func NewClient(userName, password, dbHost string, dbPort int, dbName string) *Client {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8&parseTime=True&loc=Local", userName, password, dbHost, dbPort, dbName)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Got error when connect database, the error is '%v'", err)
	}

	return &Client{
		db: db,
	}
}

// AddTicker スナップショットの追加
func (c *Client) AddTicker(t *Ticker) error {
	return c.db.Create(t).Error
}

// GetTickers 指定時刻以降のスナップショットを古い順に取得
func (c *Client) GetTickers(market string, since time.Time) ([]Ticker, error) {
	tickers := []Ticker{}
	err := c.db.
		Where("market = ? AND recorded_at >= ?", market, since).
		Order("recorded_at ASC").
		Find(&tickers).Error
	if err != nil {
		return nil, err
	}
	return tickers, nil
}

package upbit

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"upbit-client/pkg/domain"
	"upbit-client/pkg/infrastructure/memory"
)

const (
	origin = "https://api.upbit.com/v1"
)

// Client Upbit用クライアント。
// マーケット一覧は生成時に一度だけ取得し、以後は読み取り専用のカタログとして
// 全メソッドの事前検証に使う
type Client struct {
	accessKey  string
	secretKey  string
	origin     string
	httpClient *http.Client
	logger     domain.Logger
	markets    map[string]struct{}
	now        func() time.Time
}

// NewClient 認証付きクライアントの生成。マーケット一覧の取得に失敗した場合は生成しない
func NewClient(accessKey, secretKey string, logger domain.Logger) (*Client, error) {
	return newClient(origin, accessKey, secretKey, http.DefaultClient, logger)
}

// NewPublicClient 公開APIのみ利用するクライアントの生成
func NewPublicClient(logger domain.Logger) (*Client, error) {
	return newClient(origin, "", "", http.DefaultClient, logger)
}

func newClient(origin, accessKey, secretKey string, httpClient *http.Client, logger domain.Logger) (*Client, error) {
	if logger == nil {
		logger = &memory.Logger{Level: memory.Error}
	}
	c := &Client{
		accessKey:  accessKey,
		secretKey:  secretKey,
		origin:     origin,
		httpClient: httpClient,
		logger:     logger,
		now:        time.Now,
	}
	if err := c.loadMarkets(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) loadMarkets() error {
	markets, err := c.GetMarketAll()
	if err != nil {
		return &CatalogLoadError{Err: err}
	}
	if len(markets) == 0 {
		return &CatalogLoadError{Err: fmt.Errorf("market list is empty")}
	}
	c.markets = make(map[string]struct{}, len(markets))
	for _, m := range markets {
		c.markets[m.Market] = struct{}{}
	}
	return nil
}

// HasMarket マーケットがカタログに存在するか
func (c *Client) HasMarket(market string) bool {
	_, ok := c.markets[market]
	return ok
}

func (c *Client) checkMarkets(markets ...string) error {
	for _, m := range markets {
		if !c.HasMarket(m) {
			c.logger.Error("invalid market: %s", m)
			return &InvalidMarketError{Market: m}
		}
	}
	return nil
}

// GetMarketAll 取扱マーケット一覧取得
func (c *Client) GetMarketAll() ([]Market, error) {
	var res []Market
	if err := c.getPublic("/market/all", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// candleUnits 分足で指定可能な単位
var candleUnits = map[int]struct{}{
	1: {}, 3: {}, 5: {}, 10: {}, 15: {}, 30: {}, 60: {}, 240: {},
}

// GetMinutesCandles 分足取得。to と count はゼロ値で省略
func (c *Client) GetMinutesCandles(unit int, market, to string, count int) ([]Candle, error) {
	if _, ok := candleUnits[unit]; !ok {
		c.logger.Error("invalid unit: %d", unit)
		return nil, &InvalidParameterError{Message: fmt.Sprintf("invalid unit: %d", unit)}
	}
	return c.getCandles(fmt.Sprintf("/candles/minutes/%d", unit), market, to, count)
}

// GetDaysCandles 日足取得
func (c *Client) GetDaysCandles(market, to string, count int) ([]Candle, error) {
	return c.getCandles("/candles/days", market, to, count)
}

// GetWeeksCandles 週足取得
func (c *Client) GetWeeksCandles(market, to string, count int) ([]Candle, error) {
	return c.getCandles("/candles/weeks", market, to, count)
}

// GetMonthsCandles 月足取得
func (c *Client) GetMonthsCandles(market, to string, count int) ([]Candle, error) {
	return c.getCandles("/candles/months", market, to, count)
}

func (c *Client) getCandles(endpoint, market, to string, count int) ([]Candle, error) {
	if err := c.checkMarkets(market); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("market", market)
	if to != "" {
		params.Set("to", to)
	}
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}

	var res []Candle
	if err := c.getPublic(endpoint, params, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetTradesTicks 約定履歴取得。to、count、cursor はゼロ値で省略
func (c *Client) GetTradesTicks(market, to string, count int, cursor string) ([]TradeTick, error) {
	if err := c.checkMarkets(market); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("market", market)
	if to != "" {
		params.Set("to", to)
	}
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	var res []TradeTick
	if err := c.getPublic("/trades/ticks", params, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetTicker 現在値取得。複数マーケットをまとめて指定できる
func (c *Client) GetTicker(markets []string) ([]Ticker, error) {
	params, err := c.marketsParam(markets)
	if err != nil {
		return nil, err
	}

	var res []Ticker
	if err := c.getPublic("/ticker", params, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetOrderbook 板情報取得。複数マーケットをまとめて指定できる
func (c *Client) GetOrderbook(markets []string) ([]Orderbook, error) {
	params, err := c.marketsParam(markets)
	if err != nil {
		return nil, err
	}

	var res []Orderbook
	if err := c.getPublic("/orderbook", params, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) marketsParam(markets []string) (url.Values, error) {
	if len(markets) == 0 {
		c.logger.Error("no markets")
		return nil, &InvalidParameterError{Message: "no markets"}
	}
	if err := c.checkMarkets(markets...); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("markets", strings.Join(markets, ","))
	return params, nil
}

package upbit

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"upbit-client/pkg/infrastructure/memory"
)

const catalogJSON = `[
	{"market": "KRW-BTC", "korean_name": "비트코인", "english_name": "Bitcoin"},
	{"market": "KRW-ETH", "korean_name": "이더리움", "english_name": "Ethereum"},
	{"market": "BTC-ETH", "korean_name": "이더리움", "english_name": "Ethereum"},
	{"market": "USDT-BTC", "korean_name": "비트코인", "english_name": "Bitcoin"}
]`

// newTestClient マーケット一覧だけ固定で返し、他は handler に委ねるクライアントを作る
func newTestClient(t *testing.T, accessKey, secretKey string, handler http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/market/all" {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, catalogJSON)
			return
		}
		if handler == nil {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.Error(w, "unexpected request", http.StatusInternalServerError)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	c, err := newClient(ts.URL, accessKey, secretKey, ts.Client(), &memory.Logger{Level: memory.Error})
	if err != nil {
		t.Fatalf("error occured in newClient\nerror: %v", err)
	}
	return c
}

// failingTransport 呼ばれたこと自体を失敗として記録するトランスポート
type failingTransport struct {
	called *bool
}

func (f failingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	*f.called = true
	return nil, fmt.Errorf("unexpected network call: %s %s", r.Method, r.URL.Path)
}

func TestNewClient_LoadsCatalog(t *testing.T) {
	c := newTestClient(t, "", "", nil)

	if !c.HasMarket("KRW-BTC") {
		t.Errorf("catalog must contain KRW-BTC")
	}
	if c.HasMarket("KRW-XXX") {
		t.Errorf("catalog must not contain KRW-XXX")
	}
}

func TestNewClient_CatalogLoadError(t *testing.T) {
	tests := map[string]struct {
		handler http.HandlerFunc
	}{
		"server error": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "maintenance", http.StatusInternalServerError)
			},
		},
		"empty market list": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "[]")
			},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			_, err := newClient(ts.URL, "", "", ts.Client(), &memory.Logger{Level: memory.Error})
			var clErr *CatalogLoadError
			if !errors.As(err, &clErr) {
				t.Errorf("newClient() error is wrong\nwant: CatalogLoadError\ngot: %v", err)
			}
		})
	}
}

func TestPublicValidation_NoNetworkCall(t *testing.T) {
	c := newTestClient(t, "", "", nil)

	called := false
	c.httpClient = &http.Client{Transport: failingTransport{called: &called}}

	tests := map[string]struct {
		call          func() error
		wantMarket    bool
		wantParameter bool
	}{
		"minutes candles with unknown market": {
			call: func() error {
				_, err := c.GetMinutesCandles(1, "KRW-XXX", "", 0)
				return err
			},
			wantMarket: true,
		},
		"minutes candles with invalid unit": {
			call: func() error {
				_, err := c.GetMinutesCandles(7, "KRW-BTC", "", 0)
				return err
			},
			wantParameter: true,
		},
		"days candles with unknown market": {
			call: func() error {
				_, err := c.GetDaysCandles("KRW-XXX", "", 0)
				return err
			},
			wantMarket: true,
		},
		"trades ticks with unknown market": {
			call: func() error {
				_, err := c.GetTradesTicks("KRW-XXX", "", 0, "")
				return err
			},
			wantMarket: true,
		},
		"ticker with unknown market in list": {
			call: func() error {
				_, err := c.GetTicker([]string{"KRW-BTC", "KRW-XXX"})
				return err
			},
			wantMarket: true,
		},
		"ticker with empty market list": {
			call: func() error {
				_, err := c.GetTicker(nil)
				return err
			},
			wantParameter: true,
		},
		"orderbook with empty market list": {
			call: func() error {
				_, err := c.GetOrderbook([]string{})
				return err
			},
			wantParameter: true,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.call()
			if tt.wantMarket {
				var imErr *InvalidMarketError
				if !errors.As(err, &imErr) {
					t.Errorf("error is wrong\nwant: InvalidMarketError\ngot: %v", err)
				}
			}
			if tt.wantParameter {
				var ipErr *InvalidParameterError
				if !errors.As(err, &ipErr) {
					t.Errorf("error is wrong\nwant: InvalidParameterError\ngot: %v", err)
				}
			}
		})
	}

	if called {
		t.Errorf("validation errors must not issue any network call")
	}
}

func TestGetDaysCandles(t *testing.T) {
	c := newTestClient(t, "", "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/candles/days" {
			t.Errorf("path is wrong\nwant: /candles/days\ngot: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("market") != "KRW-BTC" || q.Get("count") != "10" || q.Get("to") != "2019-03-08T03:40:00-00:00" {
			t.Errorf("query is wrong\ngot: %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `[{"market": "KRW-BTC", "opening_price": 4289000.0, "trade_price": 4310000.0, "prev_closing_price": 4289000.0}]`)
	})

	candles, err := c.GetDaysCandles("KRW-BTC", "2019-03-08T03:40:00-00:00", 10)
	if err != nil {
		t.Fatalf("error occured in GetDaysCandles\nerror: %v", err)
	}
	if len(candles) != 1 {
		t.Fatalf("candle count is wrong\nwant: 1\ngot: %d", len(candles))
	}
	if candles[0].TradePrice != 4310000.0 {
		t.Errorf("trade price is wrong\nwant: 4310000.0\ngot: %f", candles[0].TradePrice)
	}
}

func TestGetTicker(t *testing.T) {
	c := newTestClient(t, "", "", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ticker" {
			t.Errorf("path is wrong\nwant: /ticker\ngot: %s", r.URL.Path)
		}
		if r.URL.Query().Get("markets") != "KRW-BTC,KRW-ETH" {
			t.Errorf("markets param is wrong\ngot: %s", r.URL.Query().Get("markets"))
		}
		fmt.Fprint(w, `[{"market": "KRW-BTC", "trade_price": 4310000.0}, {"market": "KRW-ETH", "trade_price": 146500.0}]`)
	})

	tickers, err := c.GetTicker([]string{"KRW-BTC", "KRW-ETH"})
	if err != nil {
		t.Fatalf("error occured in GetTicker\nerror: %v", err)
	}
	if len(tickers) != 2 {
		t.Fatalf("ticker count is wrong\nwant: 2\ngot: %d", len(tickers))
	}
	if tickers[1].Market != "KRW-ETH" {
		t.Errorf("market is wrong\nwant: KRW-ETH\ngot: %s", tickers[1].Market)
	}
}

func TestRemoteRequestError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}

	c := newTestClient(t, "test-access", "test-secret", handler)

	tests := map[string]func() error{
		"get": func() error {
			_, err := c.GetDaysCandles("KRW-BTC", "", 0)
			return err
		},
		"post": func() error {
			_, err := c.PostOrder(newLimitOrder("KRW-BTC", "100", "5"))
			return err
		},
		"delete": func() error {
			_, err := c.DeleteOrder("80bca2cc-fdbe-44a6-9c5d-328c65dea5b3")
			return err
		},
	}
	for name, call := range tests {
		t.Run(name, func(t *testing.T) {
			err := call()
			var rrErr *RemoteRequestError
			if !errors.As(err, &rrErr) {
				t.Fatalf("error is wrong\nwant: RemoteRequestError\ngot: %v", err)
			}
			if rrErr.Status != http.StatusTooManyRequests {
				t.Errorf("status is wrong\nwant: %d\ngot: %d", http.StatusTooManyRequests, rrErr.Status)
			}
			if rrErr.Body != "too many requests\n" {
				t.Errorf("body is wrong\ngot: %s", rrErr.Body)
			}
		})
	}
}

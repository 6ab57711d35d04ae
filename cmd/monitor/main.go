package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
	"upbit-client/pkg/domain/model"
	"upbit-client/pkg/infrastructure/memory"
	"upbit-client/pkg/infrastructure/mysql"
	"upbit-client/pkg/infrastructure/upbit"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/markcheno/go-talib"
)

type MonitorConfig struct {
	DB model.DB `required:"true" split_words:"true"`
}

func main() {
	logger := memory.Logger{Level: memory.Debug}
	logger.Info("===== START PROGRAM ====================")
	defer logger.Info("===== END PROGRAM ======================")

	var config MonitorConfig
	if err := envconfig.Process("", &config); err != nil {
		logger.Error(err.Error())
		return
	}

	mysqlCli := mysql.NewClient(config.DB.UserName, config.DB.Password, config.DB.Host, config.DB.Port, config.DB.Name)
	upbitCli, err := upbit.NewPublicClient(&logger)
	if err != nil {
		logger.Error(err.Error())
		return
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/{market}", tickerHandler(mysqlCli)).Methods(http.MethodGet).Queries("minute", "{minute:[0-9]+}")
	r.HandleFunc("/api/{market}/indicators", indicatorHandler(mysqlCli)).Methods(http.MethodGet).Queries("minute", "{minute:[0-9]+}", "period", "{period:[0-9]+}")
	r.HandleFunc("/api/{market}/orderbook", orderbookHandler(upbitCli)).Methods(http.MethodGet)

	http.Handle("/", r)
	if err := (http.ListenAndServe(":8080", nil)); err != nil {
		logger.Error("error occured: %v", err)
	}
}

type TickerResponse struct {
	Market  string         `json:"market"`
	Tickers []mysql.Ticker `json:"tickers"`
}

type IndicatorResponse struct {
	Market string    `json:"market"`
	SMA    []float64 `json:"sma"`
	RSI    []float64 `json:"rsi"`
}

func writeError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	})
}

func tickerHandler(mysqlCli *mysql.Client) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		market := mux.Vars(r)["market"]
		minute, err := strconv.Atoi(r.URL.Query().Get("minute"))
		if err != nil {
			writeError(w, err)
			return
		}
		since := time.Now().Add(-time.Duration(minute) * time.Minute)

		tickers, err := mysqlCli.GetTickers(market, since)
		if err != nil {
			writeError(w, err)
			return
		}
		json.NewEncoder(w).Encode(TickerResponse{Market: market, Tickers: tickers})
	}
}

func indicatorHandler(mysqlCli *mysql.Client) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		market := mux.Vars(r)["market"]
		minute, err := strconv.Atoi(r.URL.Query().Get("minute"))
		if err != nil {
			writeError(w, err)
			return
		}
		period, err := strconv.Atoi(r.URL.Query().Get("period"))
		if err != nil {
			writeError(w, err)
			return
		}

		since := time.Now().Add(-time.Duration(minute) * time.Minute)
		tickers, err := mysqlCli.GetTickers(market, since)
		if err != nil {
			writeError(w, err)
			return
		}

		res := IndicatorResponse{Market: market, SMA: []float64{}, RSI: []float64{}}
		// talib は period 以下の系列だと計算できない
		if len(tickers) > period {
			prices := make([]float64, len(tickers))
			for i, t := range tickers {
				prices[i] = t.TradePrice
			}
			res.SMA = talib.Sma(prices, period)
			res.RSI = talib.Rsi(prices, period)
		}
		json.NewEncoder(w).Encode(res)
	}
}

func orderbookHandler(upbitCli *upbit.Client) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		orderbooks, err := upbitCli.GetOrderbook([]string{mux.Vars(r)["market"]})
		if err != nil {
			writeError(w, err)
			return
		}
		json.NewEncoder(w).Encode(orderbooks)
	}
}

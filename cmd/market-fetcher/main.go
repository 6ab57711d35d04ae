package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"time"
	"upbit-client/pkg/domain/model"
	"upbit-client/pkg/infrastructure/memory"
	"upbit-client/pkg/infrastructure/mysql"
	"upbit-client/pkg/infrastructure/upbit"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"
)

const (
	location = "Asia/Seoul"
)

func init() {
	loc, err := time.LoadLocation(location)
	if err != nil {
		loc = time.FixedZone(location, 9*60*60)
	}
	time.Local = loc
}

type Config struct {
	// 対象マーケット（カンマ区切り）
	TargetMarkets string `required:"true" split_words:"true"`
	// 稼働間隔（秒）
	IntervalSeconds int `required:"true" split_words:"true"`
	// DB設定
	DB model.DB `required:"true" split_words:"true"`
}

func main() {
	logger := memory.Logger{Level: memory.Debug}

	logger.Info("===== START PROGRAM ====================")
	defer logger.Info("===== END PROGRAM ======================")

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		logger.Error(err.Error())
		return
	}
	markets := strings.Split(config.TargetMarkets, ",")

	logger.Info("markets: %s\n", config.TargetMarkets)
	logger.Info("interval: %d sec\n", config.IntervalSeconds)
	logger.Info("======================================")

	upbitCli, err := upbit.NewPublicClient(&logger)
	if err != nil {
		logger.Error(err.Error())
		return
	}
	mysqlCli := mysql.NewClient(config.DB.UserName, config.DB.Password, config.DB.Host, config.DB.Port, config.DB.Name)
	fetcher := NewFetcher(&config, markets, upbitCli, mysqlCli, &logger)

	rootCtx, cancel := context.WithCancel(context.Background())
	errGroup, ctx := errgroup.WithContext(rootCtx)

	errGroup.Go(fetcher.Fetch(ctx))
	errGroup.Go(func() error {
		defer cancel()
		return watchSignal(ctx, &logger)
	})

	if err := errGroup.Wait(); err != nil {
		logger.Error("error occured, %v", err)
	}
}

func watchSignal(ctx context.Context, logger *memory.Logger) error {
	// OSのシグナル監視
	quit := make(chan os.Signal, 1)
	defer close(quit)
	signal.Notify(quit, os.Interrupt)
	select {
	case <-quit:
		logger.Info("terminating ...")
	case <-ctx.Done():
	}
	return nil
}

type Fetcher struct {
	Config   *Config
	Markets  []string
	UpbitCli *upbit.Client
	MysqlCli *mysql.Client
	Logger   *memory.Logger
}

func NewFetcher(config *Config, markets []string, upbitCli *upbit.Client, mysqlCli *mysql.Client, logger *memory.Logger) *Fetcher {
	return &Fetcher{
		Config:   config,
		Markets:  markets,
		UpbitCli: upbitCli,
		MysqlCli: mysqlCli,
		Logger:   logger,
	}
}

func (f *Fetcher) Fetch(ctx context.Context) func() error {
	return func() error {
		// 現在値の定期保存
		ticker := time.NewTicker(time.Duration(f.Config.IntervalSeconds) * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := f.fetch(); err != nil {
					f.Logger.Error("failed to fetch, error: %v", err)
				}
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (f *Fetcher) fetch() error {
	tickers, err := f.UpbitCli.GetTicker(f.Markets)
	if err != nil {
		return err
	}

	recordedAt := time.Now()
	for i := range tickers {
		record := mysql.NewTicker(&tickers[i], recordedAt)
		f.Logger.Debug("%+v", record)
		if err := f.MysqlCli.AddTicker(record); err != nil {
			return err
		}
	}
	return nil
}

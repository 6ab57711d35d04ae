package main

import (
	"flag"
	"log"
	"upbit-client/pkg/domain/model"
	"upbit-client/pkg/infrastructure/upbit"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Config struct {
	Exchange model.Exchange `toml:"exchange"`
	Order    OrderConfig    `toml:"order"`
}

// OrderConfig 発注内容
type OrderConfig struct {
	Market string `toml:"market"`
	Side   string `toml:"side"`
	Price  string `toml:"price"`
	Volume string `toml:"volume"`
}

func main() {
	log.Println("===== START PROGRAM ====================")
	defer log.Println("===== END PROGRAM ======================")

	f := flag.String("f", "", "config file path")
	mode := flag.String("mode", "order", "order | cancel | status")
	orderUUID := flag.String("uuid", "", "order uuid (for cancel / status)")
	flag.Parse()
	log.Printf("config file: %s\n", *f)

	var conf Config
	if _, err := toml.DecodeFile(*f, &conf); err != nil {
		log.Fatal(err.Error())
	}

	cli, err := upbit.NewClient(conf.Exchange.AccessKey, conf.Exchange.SecretKey, nil)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch *mode {
	case "order":
		placeOrder(cli, &conf.Order)
	case "cancel":
		order, err := cli.DeleteOrder(*orderUUID)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.Printf("canceled: uuid = %s, state = %s\n", order.UUID, order.State)
	case "status":
		order, err := cli.GetOrder(*orderUUID, "")
		if err != nil {
			log.Fatal(err.Error())
		}
		log.Printf("order: %+v\n", order)
	default:
		log.Fatalf("mode is unknown; mode = %s", *mode)
	}
}

func placeOrder(cli *upbit.Client, conf *OrderConfig) {
	price, err := decimal.NewFromString(conf.Price)
	if err != nil {
		log.Fatalf("failed to parse price; price = %s, error = %v", conf.Price, err)
	}
	volume, err := decimal.NewFromString(conf.Volume)
	if err != nil {
		log.Fatalf("failed to parse volume; volume = %s, error = %v", conf.Volume, err)
	}

	req := &model.OrderRequest{
		Market: conf.Market,
		Side:   model.OrderSide(conf.Side),
		Price:  price,
		Volume: volume,
		// 後から identifier で照会できるようにクライアント側で採番しておく
		Identifier: uuid.New().String(),
	}

	log.Printf("market: %s\n", req.Market)
	log.Printf("side: %s\n", req.Side)
	log.Printf("price: %s\n", req.Price)
	log.Printf("volume: %s\n", req.Volume)
	log.Printf("identifier: %s\n", req.Identifier)

	order, err := cli.PostOrder(req)
	if err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("ordered: uuid = %s, state = %s\n", order.UUID, order.State)
}

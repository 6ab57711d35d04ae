package upbit

// Market 取扱マーケット
type Market struct {
	Market      string `json:"market"`
	KoreanName  string `json:"korean_name"`
	EnglishName string `json:"english_name"`
}

// Candle ローソク足（分・日・週・月で共通。該当しない項目はゼロ値のまま）
type Candle struct {
	Market               string  `json:"market"`
	CandleDateTimeUTC    string  `json:"candle_date_time_utc"`
	CandleDateTimeKST    string  `json:"candle_date_time_kst"`
	OpeningPrice         float64 `json:"opening_price"`
	HighPrice            float64 `json:"high_price"`
	LowPrice             float64 `json:"low_price"`
	TradePrice           float64 `json:"trade_price"`
	Timestamp            int64   `json:"timestamp"`
	CandleAccTradePrice  float64 `json:"candle_acc_trade_price"`
	CandleAccTradeVolume float64 `json:"candle_acc_trade_volume"`
	// Unit 分足のみ
	Unit int `json:"unit"`
	// PrevClosingPrice 以下は日足のみ
	PrevClosingPrice float64 `json:"prev_closing_price"`
	ChangePrice      float64 `json:"change_price"`
	ChangeRate       float64 `json:"change_rate"`
	// FirstDayOfPeriod 月足のみ
	FirstDayOfPeriod string `json:"first_day_of_period"`
}

// TradeTick 約定履歴
type TradeTick struct {
	Market           string  `json:"market"`
	TradeDateUTC     string  `json:"trade_date_utc"`
	TradeTimeUTC     string  `json:"trade_time_utc"`
	Timestamp        int64   `json:"timestamp"`
	TradePrice       float64 `json:"trade_price"`
	TradeVolume      float64 `json:"trade_volume"`
	PrevClosingPrice float64 `json:"prev_closing_price"`
	ChangePrice      float64 `json:"change_price"`
	AskBid           string  `json:"ask_bid"`
	SequentialID     int64   `json:"sequential_id"`
}

// Ticker 現在値
type Ticker struct {
	Market             string  `json:"market"`
	TradeDate          string  `json:"trade_date"`
	TradeTime          string  `json:"trade_time"`
	TradeDateKST       string  `json:"trade_date_kst"`
	TradeTimeKST       string  `json:"trade_time_kst"`
	TradeTimestamp     int64   `json:"trade_timestamp"`
	OpeningPrice       float64 `json:"opening_price"`
	HighPrice          float64 `json:"high_price"`
	LowPrice           float64 `json:"low_price"`
	TradePrice         float64 `json:"trade_price"`
	PrevClosingPrice   float64 `json:"prev_closing_price"`
	Change             string  `json:"change"`
	ChangePrice        float64 `json:"change_price"`
	ChangeRate         float64 `json:"change_rate"`
	SignedChangePrice  float64 `json:"signed_change_price"`
	SignedChangeRate   float64 `json:"signed_change_rate"`
	TradeVolume        float64 `json:"trade_volume"`
	AccTradePrice      float64 `json:"acc_trade_price"`
	AccTradePrice24h   float64 `json:"acc_trade_price_24h"`
	AccTradeVolume     float64 `json:"acc_trade_volume"`
	AccTradeVolume24h  float64 `json:"acc_trade_volume_24h"`
	Highest52WeekPrice float64 `json:"highest_52_week_price"`
	Highest52WeekDate  string  `json:"highest_52_week_date"`
	Lowest52WeekPrice  float64 `json:"lowest_52_week_price"`
	Lowest52WeekDate   string  `json:"lowest_52_week_date"`
	Timestamp          int64   `json:"timestamp"`
}

// OrderbookUnit 板の1段
type OrderbookUnit struct {
	AskPrice float64 `json:"ask_price"`
	AskSize  float64 `json:"ask_size"`
	BidPrice float64 `json:"bid_price"`
	BidSize  float64 `json:"bid_size"`
}

// Orderbook 板情報
type Orderbook struct {
	Market         string          `json:"market"`
	Timestamp      int64           `json:"timestamp"`
	TotalAskSize   float64         `json:"total_ask_size"`
	TotalBidSize   float64         `json:"total_bid_size"`
	OrderbookUnits []OrderbookUnit `json:"orderbook_units"`
}

// Account 口座残高
type Account struct {
	Currency            string `json:"currency"`
	Balance             string `json:"balance"`
	Locked              string `json:"locked"`
	AvgBuyPrice         string `json:"avg_buy_price"`
	AvgBuyPriceModified bool   `json:"avg_buy_price_modified"`
	UnitCurrency        string `json:"unit_currency"`
}

// OrderChance マーケット毎の注文可能情報
type OrderChance struct {
	BidFee     string            `json:"bid_fee"`
	AskFee     string            `json:"ask_fee"`
	Market     OrderChanceMarket `json:"market"`
	BidAccount Account           `json:"bid_account"`
	AskAccount Account           `json:"ask_account"`
}

// OrderChanceMarket 注文可能情報内のマーケット制約
type OrderChanceMarket struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	OrderTypes []string `json:"order_types"`
	OrderSides []string `json:"order_sides"`
	MaxTotal   string   `json:"max_total"`
	State      string   `json:"state"`
}

// Order 注文
type Order struct {
	UUID            string  `json:"uuid"`
	Side            string  `json:"side"`
	OrdType         string  `json:"ord_type"`
	Price           string  `json:"price"`
	State           string  `json:"state"`
	Market          string  `json:"market"`
	CreatedAt       string  `json:"created_at"`
	Volume          string  `json:"volume"`
	RemainingVolume string  `json:"remaining_volume"`
	ReservedFee     string  `json:"reserved_fee"`
	RemainingFee    string  `json:"remaining_fee"`
	PaidFee         string  `json:"paid_fee"`
	Locked          string  `json:"locked"`
	ExecutedVolume  string  `json:"executed_volume"`
	TradesCount     int     `json:"trades_count"`
	Trades          []Trade `json:"trades"`
}

// Trade 注文内の個別約定
type Trade struct {
	Market string `json:"market"`
	UUID   string `json:"uuid"`
	Price  string `json:"price"`
	Volume string `json:"volume"`
	Funds  string `json:"funds"`
	Side   string `json:"side"`
}

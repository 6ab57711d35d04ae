package upbit

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"upbit-client/pkg/domain/model"
)

// GetAccounts 口座残高一覧取得
func (c *Client) GetAccounts() ([]Account, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}

	var res []Account
	if err := c.getPrivate("/accounts", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetOrderChance マーケット毎の注文可能情報取得
func (c *Client) GetOrderChance(market string) (*OrderChance, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}
	if err := c.checkMarkets(market); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("market", market)

	var res OrderChance
	if err := c.getPrivate("/orders/chance", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetOrder 個別注文照会。uuid と identifier の少なくとも一方が必要
func (c *Client) GetOrder(uuid, identifier string) (*Order, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}
	if uuid == "" && identifier == "" {
		c.logger.Error("either uuid or identifier is required")
		return nil, &InvalidParameterError{Message: "either uuid or identifier is required"}
	}

	params := url.Values{}
	if uuid != "" {
		params.Set("uuid", uuid)
	}
	if identifier != "" {
		params.Set("identifier", identifier)
	}

	var res Order
	if err := c.getPrivate("/order", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetOrders 注文一覧照会
func (c *Client) GetOrders(market string, state model.OrderState, page int, orderBy model.SortOrder) ([]Order, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}
	if err := c.checkMarkets(market); err != nil {
		return nil, err
	}
	if !state.Valid() {
		c.logger.Error("invalid state: %s", state)
		return nil, &InvalidParameterError{Message: fmt.Sprintf("invalid state: %s", state)}
	}
	if !orderBy.Valid() {
		c.logger.Error("invalid order_by: %s", orderBy)
		return nil, &InvalidParameterError{Message: fmt.Sprintf("invalid order_by: %s", orderBy)}
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("market", market)
	params.Set("state", string(state))
	params.Set("page", strconv.Itoa(page))
	params.Set("order_by", string(orderBy))

	var res []Order
	if err := c.getPrivate("/orders", params, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// PostOrder 新規注文。呼値と最低注文額の検証を通過した場合のみ送信する
func (c *Client) PostOrder(o *model.OrderRequest) (*Order, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}
	if err := c.checkMarkets(o.Market); err != nil {
		return nil, err
	}
	if !o.Side.Valid() {
		c.logger.Error("invalid side: %s", o.Side)
		return nil, &InvalidParameterError{Message: fmt.Sprintf("invalid side: %s", o.Side)}
	}
	ordType := o.Type
	if ordType == "" {
		ordType = model.Limit
	}
	if !ordType.Valid() {
		c.logger.Error("invalid ord_type: %s", ordType)
		return nil, &InvalidParameterError{Message: fmt.Sprintf("invalid ord_type: %s", ordType)}
	}

	if ok, err := IsValidPrice(o.Market, o.Price); err != nil {
		return nil, err
	} else if !ok {
		c.logger.Error("invalid price: %s, %s", o.Market, o.Price)
		return nil, &InvalidOrderError{
			Check:   "price",
			Message: fmt.Sprintf("price %s does not fit the tick size of %s", o.Price, o.Market),
		}
	}
	if ok, err := IsAboveMinimum(o.Market, o.Price, o.Volume); err != nil {
		return nil, err
	} else if !ok {
		c.logger.Error("less than minimum order total: %s, %s, %s", o.Market, o.Price, o.Volume)
		return nil, &InvalidOrderError{
			Check:   "min_total",
			Message: fmt.Sprintf("total %s is less than the minimum order total of %s", o.Price.Mul(o.Volume), o.Market),
		}
	}

	params := url.Values{}
	params.Set("market", o.Market)
	params.Set("side", string(o.Side))
	params.Set("volume", o.Volume.String())
	params.Set("price", o.Price.String())
	params.Set("ord_type", string(ordType))
	if o.Identifier != "" {
		params.Set("identifier", o.Identifier)
	}

	var res Order
	if err := c.submit(http.MethodPost, "/orders", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DeleteOrder 注文取消
func (c *Client) DeleteOrder(uuid string) (*Order, error) {
	if err := c.requireCredentials(); err != nil {
		return nil, err
	}
	if uuid == "" {
		c.logger.Error("uuid is required")
		return nil, &InvalidParameterError{Message: "uuid is required"}
	}

	params := url.Values{}
	params.Set("uuid", uuid)

	var res Order
	if err := c.submit(http.MethodDelete, "/order", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

package upbit

import (
	"errors"
	"fmt"
)

// ErrMissingCredentials 認証情報なしで非公開APIを呼んだ場合のエラー
var ErrMissingCredentials = errors.New("access key and secret key are required for private API")

// CatalogLoadError マーケット一覧の初期ロード失敗
type CatalogLoadError struct {
	Err error
}

func (e *CatalogLoadError) Error() string {
	return fmt.Sprintf("failed to load market catalog; error: %v", e.Err)
}

func (e *CatalogLoadError) Unwrap() error {
	return e.Err
}

// InvalidMarketError カタログに存在しないマーケットの指定
type InvalidMarketError struct {
	Market string
}

func (e *InvalidMarketError) Error() string {
	return fmt.Sprintf("invalid market: %s", e.Market)
}

// InvalidParameterError 不正な引数
type InvalidParameterError struct {
	Message string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter: %s", e.Message)
}

// InvalidOrderError 注文の事前検証エラー
type InvalidOrderError struct {
	// Check 失敗した検証の種別（price または min_total）
	Check   string
	Message string
}

func (e *InvalidOrderError) Error() string {
	return fmt.Sprintf("invalid order (%s): %s", e.Check, e.Message)
}

// UnsupportedQuoteCurrencyError 未対応の決済通貨
type UnsupportedQuoteCurrencyError struct {
	Market string
}

func (e *UnsupportedQuoteCurrencyError) Error() string {
	return fmt.Sprintf("unsupported quote currency: %s", e.Market)
}

// RemoteRequestError 取引所からの2xx以外の応答
type RemoteRequestError struct {
	Status int
	Body   string
}

func (e *RemoteRequestError) Error() string {
	return fmt.Sprintf("upbit responded %d, body: %s", e.Status, e.Body)
}

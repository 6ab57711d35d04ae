package upbit

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

func (c *Client) makeURL(endpoint string, queries url.Values) (*url.URL, error) {
	u, err := url.Parse(c.origin)
	if err != nil {
		return nil, fmt.Errorf("failed to parse origin url; origin: %s, error: %w", c.origin, err)
	}

	u.Path = path.Join(u.Path, endpoint)

	if len(queries) > 0 {
		u.RawQuery = queries.Encode()
	}

	return u, nil
}

// authToken 認証用トークンの生成。
// nonce は現在時刻に9時間を加えた Unix 秒。取引所側の時刻ずれ許容は
// このオフセット込みの値を前提に較正されているため、ローカル時刻ではなく
// 固定の再現可能なオフセットとして扱う。
// query には送信するパラメータと完全に同一の集合をエンコードして入れる。
// ここがずれると署名検証で弾かれる。
func (c *Client) authToken(params url.Values) (string, error) {
	claims := jwt.MapClaims{
		"access_key": c.accessKey,
		"nonce":      c.now().Add(9 * time.Hour).Unix(),
	}
	if len(params) > 0 {
		claims["query"] = params.Encode()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.secretKey))
}

func (c *Client) requireCredentials() error {
	if c.accessKey == "" || c.secretKey == "" {
		return ErrMissingCredentials
	}
	return nil
}

// do リクエストの送信。200/201以外は RemoteRequestError として返す。
// form は GET ではクエリ文字列として URL 側に、POST/DELETE ではボディとして
// 送られるのと同じ集合で、認証時のトークン生成にも使う
func (c *Client) do(method string, u *url.URL, form url.Values, authed bool, resJSON interface{}) error {
	var reqBody io.Reader
	if method != http.MethodGet && len(form) > 0 {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, u.String(), reqBody)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if authed {
		token, err := c.authToken(form)
		if err != nil {
			return fmt.Errorf("failed to sign request, url: %s; error: %w", u.String(), err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusCreated {
		return &RemoteRequestError{Status: res.StatusCode, Body: string(body)}
	}

	if resJSON == nil {
		return nil
	}
	if err := json.Unmarshal(body, resJSON); err != nil {
		return fmt.Errorf("failed to parse response body, url: %s, body: %s; error: %w", u.String(), body, err)
	}
	return nil
}

// getPublic 公開APIのGET
func (c *Client) getPublic(endpoint string, params url.Values, resJSON interface{}) error {
	u, err := c.makeURL(endpoint, params)
	if err != nil {
		return err
	}
	return c.do(http.MethodGet, u, nil, false, resJSON)
}

// getPrivate 認証付きGET。params はクエリ文字列とトークンの両方に載る
func (c *Client) getPrivate(endpoint string, params url.Values, resJSON interface{}) error {
	u, err := c.makeURL(endpoint, params)
	if err != nil {
		return err
	}
	return c.do(http.MethodGet, u, params, true, resJSON)
}

// submit 認証付きPOST/DELETE。params はボディとトークンの両方に載る
func (c *Client) submit(method, endpoint string, params url.Values, resJSON interface{}) error {
	u, err := c.makeURL(endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(method, u, params, true, resJSON)
}

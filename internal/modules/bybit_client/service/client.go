package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bybit_bot/internal/modules/config"

	"github.com/bytedance/sonic"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

const (
	categoryLinear = "linear"

	pathPositionList  = "/v5/position/list"
	pathOrderHistory  = "/v5/order/history"
	pathWalletBalance = "/v5/account/wallet-balance"
	pathTickers       = "/v5/market/tickers"
	pathOrderCreate   = "/v5/order/create"
)

// Client для REST API Bybit v5. Потокобезопасен: общий http.Client и
// неизменяемые креды, каждый запрос подписывается отдельно.
type Client struct {
	http        *http.Client
	baseURL     string
	apiKey      string
	apiSecret   []byte
	accountType string
	orderSize   float64

	now func() time.Time
}

func NewClient(cfg *config.Config) *Client {
	timeout := cfg.Bybit.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:        &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(cfg.Bybit.BaseURL, "/"),
		apiKey:      cfg.Bybit.APIKey,
		apiSecret:   []byte(cfg.Bybit.APISecret),
		accountType: cfg.Bybit.AccountType,
		orderSize:   cfg.Trading.OrderSize,
		now:         time.Now,
	}
}

// Close освобождает соединения транспорта. Вызывается один раз на остановке.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// signed дописывает api_key, timestamp и последним sign.
func (c *Client) signed(params map[string]string) map[string]string {
	params["api_key"] = c.apiKey
	params["timestamp"] = strconv.FormatInt(c.now().UnixMilli(), 10)
	params[signKey] = Sign(c.apiSecret, params)
	return params
}

// call выполняет запрос и разворачивает конверт {retCode, retMsg, result}.
// GET уходит с параметрами в query, POST: JSON-объектом строк.
func call[T any](ctx context.Context, c *Client, op, method, path string, params map[string]string) (*T, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "bybit."+op)
	defer span.Finish()
	ext.HTTPMethod.Set(span, method)
	span.SetTag("bybit.path", path)

	result, err := doCall[T](ctx, c, op, method, path, params)
	if err != nil {
		ext.Error.Set(span, true)
		span.LogKV("error", err.Error())
	}
	return result, err
}

func doCall[T any](ctx context.Context, c *Client, op, method, path string, params map[string]string) (*T, error) {
	var (
		target = c.baseURL + path
		body   io.Reader
	)
	switch method {
	case http.MethodGet:
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		if len(q) > 0 {
			target += "?" + q.Encode()
		}
	default:
		payload, err := sonic.Marshal(params)
		if err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: op, StatusCode: resp.StatusCode}
	}

	var env envelope[T]
	if err := sonic.Unmarshal(data, &env); err != nil {
		return nil, &DataShapeError{Op: op, Field: "body", Reason: err.Error()}
	}
	if env.RetCode != 0 {
		return nil, &ExchangeError{Op: op, RetCode: env.RetCode, RetMsg: env.RetMsg}
	}
	if env.Result == nil {
		return nil, &DataShapeError{Op: op, Field: "result", Reason: "missing"}
	}
	return env.Result, nil
}

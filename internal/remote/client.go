/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wallet-client-go/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

const (
	pathLogin        = "/auth/login"
	pathBalances     = "/balances"
	pathTransactions = "/transactions"
	pathPayouts      = "/payouts"

	headerAPIKey         = "X-API-Key"
	headerIdempotencyKey = "Idempotency-Key"
)

// TokenSource supplies the bearer token. An empty token sends no
// Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the wallet REST API. A single attempt is made per call.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	tokens     TokenSource
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP/2 capable client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(cfg models.APIConfig, tokens TokenSource, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("api base url cannot be empty")
	}
	baseURL, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url scheme: %s", baseURL.Scheme)
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient, err := createCustomHttpClient(timeout)
		if err != nil {
			return nil, fmt.Errorf("unable to create custom http client: %w", err)
		}
		c.httpClient = httpClient
	}

	return c, nil
}

func createCustomHttpClient(timeout time.Duration) (*http.Client, error) {
	tr := &http.Transport{
		ResponseHeaderTimeout: timeout,
		Proxy:                 http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			KeepAlive: 30 * time.Second,
			Timeout:   timeout,
		}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		MaxIdleConnsPerHost:   5,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if err := http2.ConfigureTransport(tr); err != nil {
		return nil, err
	}

	return &http.Client{
		Transport: tr,
		Timeout:   timeout,
	}, nil
}

// Login is the only endpoint whose response is not enveloped
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var out models.LoginResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, nil, req, nil, &out); err != nil {
		return nil, fmt.Errorf("unable to login: %w", err)
	}
	return &out, nil
}

func (c *Client) GetBalances(ctx context.Context) ([]models.Wallet, error) {
	var out models.Envelope[[]models.Wallet]
	if err := c.do(ctx, http.MethodGet, pathBalances, nil, nil, nil, &out); err != nil {
		return nil, fmt.Errorf("unable to get balances: %w", err)
	}
	return out.Data, nil
}

func (c *Client) GetTransactions(ctx context.Context, q TransactionQuery) (*models.TransactionsPage, error) {
	var out models.Envelope[models.TransactionsPage]
	if err := c.do(ctx, http.MethodGet, pathTransactions, q.Values(), nil, nil, &out); err != nil {
		return nil, fmt.Errorf("unable to get transactions: %w", err)
	}
	return &out.Data, nil
}

// CreatePayout submits a payout with a fresh idempotency key
func (c *Client) CreatePayout(ctx context.Context, req models.PayoutRequest) (*models.Payout, error) {
	headers := http.Header{}
	headers.Set(headerIdempotencyKey, uuid.New().String())

	var out models.Envelope[models.Payout]
	if err := c.do(ctx, http.MethodPost, pathPayouts, nil, req, headers, &out); err != nil {
		return nil, fmt.Errorf("unable to create payout: %w", err)
	}

	zap.L().Info("Payout created",
		zap.Int64("payout_id", out.Data.Id),
		zap.Int64("wallet_id", out.Data.WalletId),
		zap.String("amount", out.Data.Amount.String()),
		zap.String("status", out.Data.Status))

	return &out.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, headers http.Header, out any) error {
	endpoint := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("unable to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return fmt.Errorf("unable to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	for k, v := range headers {
		req.Header[k] = v
	}
	c.authorize(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		zap.L().Debug("Request failed without response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return fmt.Errorf("%w: %w", ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return rejected(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable to decode response: %w", err)
	}
	return nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		zap.L().Warn("Unable to load access token", zap.Error(err))
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func rejected(resp *http.Response) error {
	apiErr := models.APIError{}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if len(data) > 0 {
		_ = json.Unmarshal(data, &apiErr)
	}

	apiErr.Status = resp.StatusCode
	if apiErr.Error == "" {
		apiErr.Error = "Error"
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	if apiErr.Message == "" {
		apiErr.Message = "An error occurred"
	}

	return &RejectedError{StatusCode: resp.StatusCode, APIError: apiErr}
}

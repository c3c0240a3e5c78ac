// Package esplora implements the chain source over an Esplora block explorer HTTP API.
package esplora

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/clock"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/chain"
	"github.com/goodnatureofminers/opreturn-explorer-backend/internal/opreturn/model"
	"go.uber.org/ratelimit"
)

const (
	// DefaultTxFetchDelay paces every transaction detail request.
	DefaultTxFetchDelay = 100 * time.Millisecond

	defaultTimeout  = 30 * time.Second
	maxBodySize     = 8 << 20
	maxErrorBodyLen = 256
)

// Config configures a Client.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	TxFetchDelay      time.Duration
	RequestsPerSecond int
}

// Client fetches blocks and transactions from an Esplora API. It performs no retries
// and no caching; every failure is returned to the caller.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	txFetchDelay time.Duration
	sleep        clock.SleepFunc
	limiter      ratelimit.Limiter
	metrics      Metrics
}

// DefaultBaseURL returns the public Blockstream Esplora endpoint for network.
func DefaultBaseURL(network model.Network) (string, error) {
	switch strings.ToLower(string(network)) {
	case "", string(model.Mainnet), "main", "bitcoin":
		return "https://blockstream.info/api", nil
	case string(model.Testnet), "testnet3":
		return "https://blockstream.info/testnet/api", nil
	case string(model.Signet):
		return "https://blockstream.info/signet/api", nil
	default:
		return "", fmt.Errorf("unsupported network %q", network)
	}
}

// NewClient constructs an instrumented Esplora client.
func NewClient(cfg Config, metrics Metrics) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("esplora base url is required")
	}
	if metrics == nil {
		return nil, errors.New("esplora metrics is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	delay := cfg.TxFetchDelay
	if delay < 0 {
		delay = 0
	}

	c := &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		txFetchDelay: delay,
		sleep:        clock.SleepWithContext,
		metrics:      metrics,
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = ratelimit.New(cfg.RequestsPerSecond, ratelimit.WithoutSlack)
	}
	return c, nil
}

// TipHeight returns the current chain tip height.
func (c *Client) TipHeight(ctx context.Context) (height uint64, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_tip_height", err, started)
	}()

	body, err := c.get(ctx, "/blocks/tip/height")
	if err != nil {
		return 0, err
	}
	height, err = strconv.ParseUint(strings.TrimSpace(string(body)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse tip height: %w", err)
	}
	return height, nil
}

// BlockHash resolves the canonical block hash at height.
func (c *Client) BlockHash(ctx context.Context, height uint64) (hash string, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_block_hash", err, started)
	}()

	body, err := c.get(ctx, fmt.Sprintf("/block-height/%d", height))
	if err != nil {
		return "", err
	}
	hash = strings.TrimSpace(string(body))
	if err = validateHash(hash); err != nil {
		return "", err
	}
	return hash, nil
}

// Block fetches block metadata by hash.
func (c *Client) Block(ctx context.Context, hash string) (block model.Block, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_block", err, started)
	}()

	if err = validateHash(hash); err != nil {
		return model.Block{}, err
	}

	var resp blockResponse
	if err = c.getJSON(ctx, "/block/"+hash, &resp); err != nil {
		return model.Block{}, err
	}
	return convertBlock(resp)
}

// BlockTxIDs fetches the ordered transaction ids of a block.
func (c *Client) BlockTxIDs(ctx context.Context, hash string) (txids []string, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_block_txids", err, started)
	}()

	if err = validateHash(hash); err != nil {
		return nil, err
	}
	if err = c.getJSON(ctx, "/block/"+hash+"/txids", &txids); err != nil {
		return nil, err
	}
	return txids, nil
}

// Transaction fetches full transaction detail. Every call first waits for the
// configured pacing delay.
func (c *Client) Transaction(ctx context.Context, txid string) (tx *chain.Transaction, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("get_transaction", err, started)
	}()

	if err = validateHash(txid); err != nil {
		return nil, err
	}
	if err = c.sleep(ctx, c.txFetchDelay); err != nil {
		return nil, fmt.Errorf("pacing delay: %w", err)
	}

	var resp txResponse
	if err = c.getJSON(ctx, "/tx/"+txid, &resp); err != nil {
		return nil, err
	}
	return convertTransaction(resp)
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if c.limiter != nil {
		c.limiter.Take()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request %s: %w", path, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := strings.TrimSpace(string(body))
		if len(msg) > maxErrorBodyLen {
			msg = msg[:maxErrorBodyLen]
		}
		return nil, &StatusError{Path: path, Code: resp.StatusCode, Body: msg}
	}
	return body, nil
}

func validateHash(hash string) error {
	if len(hash) != chainhash.MaxHashStringSize {
		return fmt.Errorf("%w: %q", ErrInvalidHash, hash)
	}
	if _, err := chainhash.NewHashFromStr(hash); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidHash, hash, err)
	}
	return nil
}

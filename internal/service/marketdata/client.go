// Package marketdata fetches daily OHLCV history and live trade prints from
// the upstream provider, rotating across configured API keys under a
// per-key rate limit.
package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"TradePulse/internal/domain/models"
	domrepo "TradePulse/internal/domain/repository"
	"TradePulse/internal/service/ratelimit"
	pkghttp "TradePulse/pkg/http"
	applogger "TradePulse/pkg/logger"
)

// Config holds the provider endpoints and key pool.
type Config struct {
	BaseURL           string
	WebsocketURL      string
	APIKeys           []string
	RequestsPerMinute float64
	ReconnectDelay    time.Duration
	PingInterval      time.Duration
}

// Client is the REST side of the provider. Safe for concurrent use; key
// rotation is guarded by the limiter's own lock.
type Client struct {
	http    *pkghttp.Client
	limiter *ratelimit.Limiter
	cfg     Config
	l       *applogger.Logger
}

func NewClient(httpc *pkghttp.Client, limiter *ratelimit.Limiter, cfg Config, l *applogger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("marketdata: base URL is required")
	}
	if len(cfg.APIKeys) == 0 {
		return nil, fmt.Errorf("marketdata: at least one API key is required")
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}
	return &Client{http: httpc, limiter: limiter, cfg: cfg, l: l}, nil
}

// candleResponse is the provider's daily-candle payload: parallel arrays per
// field, s = "ok" | "no_data".
type candleResponse struct {
	Status  string    `json:"s"`
	Times   []int64   `json:"t"`
	Opens   []float64 `json:"o"`
	Highs   []float64 `json:"h"`
	Lows    []float64 `json:"l"`
	Closes  []float64 `json:"c"`
	Volumes []float64 `json:"v"`
}

// FetchDailyBars pulls daily candles for from <= date <= to. Keys are tried
// in order until one has rate-limit budget left.
func (c *Client) FetchDailyBars(ctx context.Context, ticker string, from, to time.Time) (models.PriceSeries, error) {
	key, err := c.pickKey()
	if err != nil {
		return nil, err
	}

	var resp candleResponse
	reqErr := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodGet,
		URL:    c.cfg.BaseURL + "/stock/candle",
		QueryParams: map[string][]string{
			"symbol":     {ticker},
			"resolution": {"D"},
			"from":       {strconv.FormatInt(from.Unix(), 10)},
			"to":         {strconv.FormatInt(to.Unix(), 10)},
			"token":      {key},
		},
	}, &resp)
	if reqErr != nil {
		if c.l != nil {
			c.l.Error("marketdata candle fetch failed",
				applogger.String("ticker", ticker),
				applogger.Error(reqErr),
			)
		}
		return nil, fmt.Errorf("fetch daily bars %s: %w", ticker, reqErr)
	}

	if resp.Status == "no_data" {
		return nil, nil
	}
	if resp.Status != "ok" {
		return nil, fmt.Errorf("fetch daily bars %s: provider status %q", ticker, resp.Status)
	}

	n := len(resp.Times)
	if len(resp.Opens) != n || len(resp.Highs) != n || len(resp.Lows) != n ||
		len(resp.Closes) != n || len(resp.Volumes) != n {
		return nil, fmt.Errorf("fetch daily bars %s: ragged candle arrays", ticker)
	}

	series := make(models.PriceSeries, 0, n)
	for i := 0; i < n; i++ {
		series = append(series, models.PricePoint{
			Date:   time.Unix(resp.Times[i], 0).UTC().Truncate(24 * time.Hour),
			Open:   resp.Opens[i],
			High:   resp.Highs[i],
			Low:    resp.Lows[i],
			Close:  resp.Closes[i],
			Volume: resp.Volumes[i],
		})
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("fetch daily bars %s: %w", ticker, err)
	}
	if c.l != nil {
		c.l.Debug("marketdata candles fetched",
			applogger.String("ticker", ticker),
			applogger.Int("bars", len(series)),
		)
	}
	return series, nil
}

// pickKey returns the first API key with rate-limit budget remaining.
func (c *Client) pickKey() (string, error) {
	perSec := c.cfg.RequestsPerMinute / 60
	for _, key := range c.cfg.APIKeys {
		if c.limiter.Allow("marketdata:"+key, c.cfg.RequestsPerMinute, perSec) {
			return key, nil
		}
	}
	return "", fmt.Errorf("marketdata: all %d API keys rate limited", len(c.cfg.APIKeys))
}

var _ domrepo.MarketData = (*Client)(nil)

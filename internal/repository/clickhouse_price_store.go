package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"TradePulse/internal/domain/models"
	domrepo "TradePulse/internal/domain/repository"
	pkgch "TradePulse/pkg/clickhouse"
	applogger "TradePulse/pkg/logger"
)

const dailyBarsTable = "tradepulse.daily_bars"

var schemaStatements = []string{
	`CREATE DATABASE IF NOT EXISTS tradepulse`,
	`CREATE TABLE IF NOT EXISTS ` + dailyBarsTable + ` (
        ticker LowCardinality(String),
        date   Date,
        open   Float64,
        high   Float64,
        low    Float64,
        close  Float64,
        volume Float64
    ) ENGINE = ReplacingMergeTree
    ORDER BY (ticker, date)`,
}

// CHPriceStore implements PriceStore backed by ClickHouse daily bars.
type CHPriceStore struct {
	client *pkgch.Client
	db     *sql.DB
	l      *applogger.Logger
}

func NewCHPriceStore(ch *pkgch.Client) *CHPriceStore {
	return &CHPriceStore{client: ch, db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHPriceStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHPriceStore) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, schemaStatements)
}

func (s *CHPriceStore) GetDailyBars(ctx context.Context, ticker string, from, to time.Time) (models.PriceSeries, error) {
	start := time.Now()
	const q = `
        SELECT date, open, high, low, close, volume
        FROM ` + dailyBarsTable + ` FINAL
        WHERE ticker = ? AND date >= ? AND date <= ?
        ORDER BY date ASC
    `
	rows, err := s.db.QueryContext(ctx, q, ticker, from, to)
	if err != nil {
		s.logError("clickhouse daily_bars query error", ticker, err)
		return nil, fmt.Errorf("get daily bars: %w", err)
	}
	defer rows.Close()

	out, err := s.scanBars(rows, ticker)
	if err != nil {
		return nil, err
	}
	if s.l != nil {
		s.l.Info("clickhouse daily_bars ok",
			applogger.String("ticker", ticker),
			applogger.Int("rows", len(out)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return out, nil
}

func (s *CHPriceStore) GetLatestBars(ctx context.Context, ticker string, n int) (models.PriceSeries, error) {
	const q = `
        SELECT date, open, high, low, close, volume
        FROM ` + dailyBarsTable + ` FINAL
        WHERE ticker = ?
        ORDER BY date DESC
        LIMIT ?
    `
	rows, err := s.db.QueryContext(ctx, q, ticker, n)
	if err != nil {
		s.logError("clickhouse latest_bars query error", ticker, err)
		return nil, fmt.Errorf("get latest bars: %w", err)
	}
	defer rows.Close()

	tmp, err := s.scanBars(rows, ticker)
	if err != nil {
		return nil, err
	}
	// reverse to ASC
	for i, j := 0, len(tmp)-1; i < j; i, j = i+1, j-1 {
		tmp[i], tmp[j] = tmp[j], tmp[i]
	}
	return tmp, nil
}

func (s *CHPriceStore) scanBars(rows *sql.Rows, ticker string) (models.PriceSeries, error) {
	out := make(models.PriceSeries, 0, 256)
	for rows.Next() {
		var p models.PricePoint
		if err := rows.Scan(&p.Date, &p.Open, &p.High, &p.Low, &p.Close, &p.Volume); err != nil {
			s.logError("clickhouse daily_bars scan error", ticker, err)
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		s.logError("clickhouse daily_bars rows error", ticker, err)
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (s *CHPriceStore) StoreBars(ctx context.Context, ticker string, bars []models.PricePoint) error {
	if len(bars) == 0 {
		return nil
	}
	// Chunked multi-row VALUES insert; ReplacingMergeTree dedupes on
	// (ticker, date) so re-ingesting a day is safe.
	const chunkSize = 2000
	for start := 0; start < len(bars); start += chunkSize {
		end := start + chunkSize
		if end > len(bars) {
			end = len(bars)
		}

		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*7)
		for _, b := range bars[start:end] {
			if b.Date.IsZero() {
				continue
			}
			values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
			args = append(args, ticker, b.Date, b.Open, b.High, b.Low, b.Close, b.Volume)
		}
		if len(values) == 0 {
			continue
		}
		q := fmt.Sprintf("INSERT INTO %s (ticker, date, open, high, low, close, volume) VALUES %s",
			dailyBarsTable, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.logError("clickhouse store_bars error", ticker, err)
			return fmt.Errorf("store bars: %w", err)
		}
	}
	return nil
}

func (s *CHPriceStore) LastDate(ctx context.Context, ticker string) (time.Time, error) {
	const q = `SELECT max(date) FROM ` + dailyBarsTable + ` WHERE ticker = ?`
	var last time.Time
	if err := s.db.QueryRowContext(ctx, q, ticker).Scan(&last); err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("last date: %w", err)
	}
	return last, nil
}

func (s *CHPriceStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHPriceStore) Close() error {
	return nil // pool owned by pkg client
}

func (s *CHPriceStore) logError(msg, ticker string, err error) {
	if s.l == nil {
		return
	}
	s.l.Error(msg,
		applogger.String("table", dailyBarsTable),
		applogger.String("ticker", ticker),
		applogger.Error(err),
	)
}

var _ domrepo.PriceStore = (*CHPriceStore)(nil)

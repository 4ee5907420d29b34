package usecase

import (
	"context"

	"TradePulse/internal/domain/models"
	domrepo "TradePulse/internal/domain/repository"
	applogger "TradePulse/pkg/logger"
)

// QuoteWatcher consumes the live quote stream for tracked tickers and keeps
// the last-price gauges current. Signals themselves are computed on daily
// bars; the watcher only observes.
type QuoteWatcher struct {
	stream  domrepo.QuoteStream
	metrics domrepo.Metrics
	l       *applogger.Logger
}

func NewQuoteWatcher(stream domrepo.QuoteStream, metrics domrepo.Metrics, l *applogger.Logger) *QuoteWatcher {
	return &QuoteWatcher{stream: stream, metrics: metrics, l: l}
}

// IsConnected reports the stream connection state.
func (w *QuoteWatcher) IsConnected() bool { return w.stream.IsConnected() }

// Start connects, subscribes and consumes until the context ends.
func (w *QuoteWatcher) Start(ctx context.Context) error {
	if err := w.stream.Connect(ctx); err != nil {
		return err
	}
	if err := w.stream.Subscribe(ctx); err != nil {
		return err
	}
	quotes, errs := w.stream.Read(ctx)
	go w.consume(ctx, quotes, errs)
	return nil
}

func (w *QuoteWatcher) consume(ctx context.Context, quotes <-chan *models.Quote, errs <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errs:
			if err != nil {
				if w.metrics != nil {
					w.metrics.RecordError("quote_stream")
				}
				if w.l != nil {
					w.l.Warn("quote stream error, reconnecting", applogger.Error(err))
				}
				_ = w.stream.Reconnect(ctx)
			}
		case q := <-quotes:
			if q == nil {
				continue
			}
			if w.metrics != nil {
				w.metrics.RecordLastClose(q.Ticker, q.Price)
			}
		}
	}
}

// Stop closes the stream.
func (w *QuoteWatcher) Stop() error { return w.stream.Close() }

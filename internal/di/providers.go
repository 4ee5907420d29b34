package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"TradePulse/internal/domain/repository"
	"TradePulse/internal/handler/api"
	internalrepo "TradePulse/internal/repository"
	"TradePulse/internal/service/marketdata"
	enginemetrics "TradePulse/internal/service/metrics"
	"TradePulse/internal/service/ratelimit"
	"TradePulse/internal/services/backtest"
	"TradePulse/internal/services/indicator"
	"TradePulse/internal/services/strategy"
	"TradePulse/internal/usecase"
	pkgcache "TradePulse/pkg/cache"
	pkgch "TradePulse/pkg/clickhouse"
	"TradePulse/pkg/config"
	pkghttp "TradePulse/pkg/http"
	pkgkafka "TradePulse/pkg/kafka"
	applogger "TradePulse/pkg/logger"
	"TradePulse/pkg/queue"
	"TradePulse/pkg/server"
)

// ProvideLogger creates the application logger from the environment.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{Level: "info", Format: "json", Output: "stdout"}
	if cfg.Environment == "development" {
		lc.Level = "debug"
		lc.Format = "console"
	}
	return applogger.New(lc)
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvidePriceStore creates the daily bar store and initializes its schema.
func ProvidePriceStore(chClient *pkgch.Client, l *applogger.Logger) (repository.PriceStore, error) {
	store := internalrepo.NewCHPriceStore(chClient)
	store.SetLogger(l)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("price store schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideSignalPublisher creates the Kafka signal publisher, or nil when
// Kafka is disabled. The use case treats a nil publisher as publish-nowhere.
func ProvideSignalPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.SignalPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaSignalPublisher(producer, cfg.Kafka.SignalsTopic)
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return enginemetrics.NewPromMetrics()
}

// ProvideCache creates the cache service: layered Redis+memory when Redis is
// enabled, in-process memory otherwise.
func ProvideCache(cfg *config.Config, l *applogger.Logger) pkgcache.Service {
	if !cfg.Redis.Enabled {
		return pkgcache.NewMemoryCache()
	}
	host, port := splitAddr(cfg.Redis.Addr)
	rc, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Redis.Password),
		pkgcache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		l.Warn("redis cache unavailable, using memory cache", applogger.Error(err))
		return pkgcache.NewMemoryCache()
	}
	return pkgcache.NewLayeredCache(rc)
}

// ProvideIndicatorEngine creates the indicator engine.
func ProvideIndicatorEngine() *indicator.Engine {
	return indicator.NewEngine()
}

// ProvideStrategyEngine creates the strategy engine over the built-in registry.
func ProvideStrategyEngine(ind *indicator.Engine, l *applogger.Logger) *strategy.Engine {
	return strategy.NewEngine(strategy.NewDefaultRegistry(), ind, l)
}

// ProvideSimulator creates the backtest simulator.
func ProvideSimulator(strategies *strategy.Engine, l *applogger.Logger) *backtest.Simulator {
	return backtest.NewSimulator(strategies, l)
}

// ProvideMarketData creates the REST market data client.
func ProvideMarketData(cfg *config.Config, l *applogger.Logger) (repository.MarketData, error) {
	return marketdata.NewClient(
		pkghttp.NewClient(),
		ratelimit.New(),
		marketDataConfig(cfg),
		l,
	)
}

// ProvideQuoteWatcher creates the live quote watcher, or nil when streaming
// is disabled.
func ProvideQuoteWatcher(cfg *config.Config, metrics repository.Metrics, l *applogger.Logger) *usecase.QuoteWatcher {
	if !cfg.MarketData.StreamEnabled {
		return nil
	}
	stream := marketdata.NewStream(marketDataConfig(cfg), cfg.MarketData.Tickers, l)
	return usecase.NewQuoteWatcher(stream, metrics, l)
}

// ProvideAnalysisUseCase creates the analysis use case.
func ProvideAnalysisUseCase(
	store repository.PriceStore,
	ind *indicator.Engine,
	strategies *strategy.Engine,
	cache pkgcache.Service,
	publisher repository.SignalPublisher,
	metrics repository.Metrics,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.AnalysisUseCase {
	return usecase.NewAnalysisUseCase(store, ind, strategies, cache, publisher, metrics, cfg.Engine.SignalCacheTTL, l)
}

// ProvideBacktestUseCase creates the backtest use case.
func ProvideBacktestUseCase(
	store repository.PriceStore,
	sim *backtest.Simulator,
	metrics repository.Metrics,
	l *applogger.Logger,
) *usecase.BacktestUseCase {
	return usecase.NewBacktestUseCase(store, sim, metrics, l)
}

// ProvideDailyUpdateUseCase creates the daily bar refresh use case.
func ProvideDailyUpdateUseCase(
	store repository.PriceStore,
	market repository.MarketData,
	l *applogger.Logger,
) *usecase.DailyUpdateUseCase {
	return usecase.NewDailyUpdateUseCase(store, market, l)
}

// ProvideSweepUseCase creates the backtest sweep use case.
func ProvideSweepUseCase(
	store repository.PriceStore,
	sim *backtest.Simulator,
	cfg *config.Config,
	l *applogger.Logger,
) *usecase.SweepUseCase {
	return usecase.NewSweepUseCase(store, sim, cfg.Engine.SweepWorkers, l)
}

// ProvideUpdateScheduler creates the periodic bar refresh scheduler.
func ProvideUpdateScheduler(
	cfg *config.Config,
	daily *usecase.DailyUpdateUseCase,
	l *applogger.Logger,
) *usecase.UpdateScheduler {
	return usecase.NewUpdateScheduler(daily, cfg.MarketData.Tickers, cfg.Engine.UpdateInterval, l)
}

// ProvideQueueConsumer creates the Redis job consumer with the background
// jobs registered, or nil when the queue is disabled.
func ProvideQueueConsumer(
	cfg *config.Config,
	daily *usecase.DailyUpdateUseCase,
	sweep *usecase.SweepUseCase,
	l *applogger.Logger,
) *queue.RedisQueue {
	if !cfg.Queue.Enabled || !cfg.Redis.Enabled {
		return nil
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	jobs := []queue.Job{
		usecase.NewDailyUpdateJob(daily, l),
		usecase.NewSweepJob(sweep, l),
	}
	return queue.NewRedisConsumer(l, &queue.QueueConfig{
		Workers:    cfg.Queue.Workers,
		RetryLimit: cfg.Queue.RetryLimit,
		RetryDelay: cfg.Queue.RetryDelay,
	}, client, jobs)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	l *applogger.Logger,
	analysis *usecase.AnalysisUseCase,
	bt *usecase.BacktestUseCase,
) *api.AnalysisHandler {
	return api.NewAnalysisHandler(l, analysis, bt)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	consumer *queue.RedisQueue,
	watcher *usecase.QuoteWatcher,
	scheduler *usecase.UpdateScheduler,
	handler *api.AnalysisHandler,
) *server.App {
	app := server.New(cfg, l, chClient, producer, consumer, watcher, scheduler)
	app.SetHTTPHandler(handler)
	return app
}

func marketDataConfig(cfg *config.Config) marketdata.Config {
	return marketdata.Config{
		BaseURL:           cfg.MarketData.BaseURL,
		WebsocketURL:      cfg.MarketData.WebSocketURL,
		APIKeys:           cfg.MarketData.APIKeys,
		RequestsPerMinute: cfg.MarketData.RequestsPerMinute,
		ReconnectDelay:    cfg.MarketData.ReconnectDelay,
		PingInterval:      cfg.MarketData.PingInterval,
	}
}

func splitAddr(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return addr, 6379
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return host, 6379
	}
	return host, port
}

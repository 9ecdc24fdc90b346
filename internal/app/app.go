package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/webscope/siteinfo/internal/cache"
	"github.com/webscope/siteinfo/internal/config"
	"github.com/webscope/siteinfo/internal/extract"
	"github.com/webscope/siteinfo/internal/fetch"
	"github.com/webscope/siteinfo/internal/httpserver"
	"github.com/webscope/siteinfo/internal/httpserver/deps"
	"github.com/webscope/siteinfo/internal/logger"
	"github.com/webscope/siteinfo/internal/rates"
	"github.com/webscope/siteinfo/internal/redis"
	redisstore "github.com/webscope/siteinfo/internal/store/redis"
	"github.com/webscope/siteinfo/internal/version"
	"github.com/webscope/siteinfo/internal/website"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDialTimeout,
		ReadTimeout:    cfg.RedisReadTimeout,
		WriteTimeout:   cfg.RedisWriteTimeout,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	// Website extraction pipeline: short-timeout HTML fetches.
	htmlFetcher := fetch.New(cfg.FetchTimeout, fetch.AcceptHTML)
	extractor := extract.New(htmlFetcher, loggerClient)
	websites := website.NewService(redisstore.NewStore(redisClient), extractor, loggerClient)

	// Currency aggregation pipeline: longer-timeout JSON fetches, with the
	// ECB lookups memoized in a TTL cache.
	jsonFetcher := fetch.New(cfg.RateTimeout, fetch.AcceptJSON)
	rateCache := cache.New()
	spot := rates.NewBlockchainClient(jsonFetcher, cfg.BlockchainBaseURL, loggerClient)
	exchange := rates.NewECBClient(jsonFetcher, cfg.ECBBaseURL, rateCache, cfg.RateCacheTTL, loggerClient)
	ratesService := rates.NewService(spot, exchange, loggerClient)

	d := deps.Deps{
		Logger:      loggerClient,
		StartTime:   time.Now(),
		Version:     version.Version,
		Commit:      version.Commit,
		BuildDate:   version.BuildDate,
		GoVersion:   version.GoVersion,
		TimeNow:     time.Now,
		TrustProxy:  cfg.TrustProxy,
		Websites:    websites,
		Rates:       ratesService,
		RedisClient: redisClient,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("Starting siteinfo %s (commit=%s, built=%s, go=%s) on %s",
		version.Version, version.Commit, version.BuildDate, version.GoVersion, a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		}
	}

	a.logger.Info("siteinfo stopped cleanly")
	return nil
}

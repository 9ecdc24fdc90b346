package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/webscope/siteinfo/internal/logger"
	"github.com/webscope/siteinfo/internal/rates"
	"github.com/webscope/siteinfo/internal/website"
)

type Deps struct {
	Logger     logger.Logger
	StartTime  time.Time
	Version    string
	Commit     string
	BuildDate  string
	GoVersion  string
	TimeNow    func() time.Time // for testing, defaults to time.Now
	TrustProxy bool             // true if running behind a trusted reverse proxy

	Websites    *website.Service // website record store
	Rates       *rates.Service   // currency aggregator
	RedisClient *redis.Client    // backing store connection, used by readiness checks
}

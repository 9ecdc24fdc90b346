package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/webscope/siteinfo/internal/logger"
)

// ecbSeriesPath selects the monthly GBP-against-EUR average spot rate:
// EXR dataset, M = monthly frequency, SP00 = spot, A = average.
const ecbSeriesPath = "/EXR/M.GBP.EUR.SP00.A"

// RateCache is the bounded-TTL memoization the ECB client writes through.
type RateCache interface {
	Get(key string) (float64, bool)
	Set(key string, value float64, ttl time.Duration)
}

// ECBClient reads the monthly-average GBP/EUR exchange rate from the ECB
// SDMX data API and serves repeat lookups from cache.
type ECBClient struct {
	fetcher Fetcher
	baseURL string
	cache   RateCache
	ttl     time.Duration
	log     logger.Logger
	now     func() time.Time
}

func NewECBClient(fetcher Fetcher, baseURL string, cache RateCache, ttl time.Duration, log logger.Logger) *ECBClient {
	return &ECBClient{
		fetcher: fetcher,
		baseURL: baseURL,
		cache:   cache,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
	}
}

// sdmxResponse covers just the slice of the SDMX JSON shape this client
// reads: dataSets[0].series["0:0:0:0:0"].observations["0"][0].
type sdmxResponse struct {
	DataSets []struct {
		Series map[string]struct {
			Observations map[string][]json.Number `json:"observations"`
		} `json:"series"`
	} `json:"dataSets"`
}

// EURToGBPRate returns the EUR-to-GBP monthly-average rate for the given
// range, or the latest available observation when dr is nil. The upstream
// series is quoted GBP-to-EUR, so the observation is inverted before being
// cached and returned. Every failure path yields (0, false) and no cache
// write.
func (c *ECBClient) EURToGBPRate(ctx context.Context, dr *DateRange) (float64, bool) {
	key := c.cacheKey(dr)
	if rate, ok := c.cache.Get(key); ok {
		c.log.Debug("exchange rate served from cache", logger.String("key", key))
		return rate, true
	}

	body, err := c.fetcher.Get(ctx, c.requestURL(dr))
	if err != nil {
		c.log.Warn("exchange rate request failed", logger.Error(err))
		return 0, false
	}

	var resp sdmxResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.log.Warn("exchange rate response is not valid json", logger.Error(err))
		return 0, false
	}

	gbpToEUR, ok := firstObservation(resp)
	if !ok {
		c.log.Warn("exchange rate response has no observation", logger.String("key", key))
		return 0, false
	}
	if gbpToEUR == 0 {
		c.log.Warn("exchange rate observation is zero", logger.String("key", key))
		return 0, false
	}

	eurToGBP := 1 / gbpToEUR
	c.cache.Set(key, eurToGBP, c.ttl)
	return eurToGBP, true
}

// cacheKey derives the memoization key from the operation and the range
// bounds, each bound defaulting to today when absent.
func (c *ECBClient) cacheKey(dr *DateRange) string {
	today := c.now().Format(dateLayout)
	start, end := today, today
	if dr != nil {
		if dr.Start != "" {
			start = dr.Start
		}
		if dr.End != "" {
			end = dr.End
		}
	}
	return fmt.Sprintf("ecb_eur_gbp_rate_%s_%s", start, end)
}

func (c *ECBClient) requestURL(dr *DateRange) string {
	params := url.Values{}
	params.Set("format", "jsondata")
	params.Set("detail", "dataonly")
	if dr != nil {
		params.Set("startPeriod", dr.Start)
		params.Set("endPeriod", dr.End)
	}
	return c.baseURL + ecbSeriesPath + "?" + params.Encode()
}

func firstObservation(resp sdmxResponse) (float64, bool) {
	if len(resp.DataSets) == 0 {
		return 0, false
	}
	series, ok := resp.DataSets[0].Series["0:0:0:0:0"]
	if !ok {
		return 0, false
	}
	obs, ok := series.Observations["0"]
	if !ok || len(obs) == 0 {
		return 0, false
	}
	v, err := obs[0].Float64()
	if err != nil {
		return 0, false
	}
	return v, true
}

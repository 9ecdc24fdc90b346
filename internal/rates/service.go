package rates

import (
	"context"
	"sync"
	"time"

	"github.com/webscope/siteinfo/internal/logger"
)

// SpotPriceClient yields a near-real-time market price, absent on failure.
type SpotPriceClient interface {
	BitcoinPriceEUR(ctx context.Context) (float64, bool)
}

// ExchangeRateClient yields a monthly-average exchange rate for an optional
// date range, absent on failure.
type ExchangeRateClient interface {
	EURToGBPRate(ctx context.Context, dr *DateRange) (float64, bool)
}

// Snapshot is the aggregate rates result. Fields are independently nil when
// the upstream data was unavailable; the endpoint still answers.
type Snapshot struct {
	BitcoinEUR *float64 `json:"bitcoin_eur"`
	EURToGBP   *float64 `json:"eur_to_gbp"`
	BitcoinGBP *float64 `json:"bitcoin_gbp"`
}

// Service orchestrates the two rate clients into one snapshot.
type Service struct {
	spot     SpotPriceClient
	exchange ExchangeRateClient
	log      logger.Logger
	now      func() time.Time
}

func NewService(spot SpotPriceClient, exchange ExchangeRateClient, log logger.Logger) *Service {
	return &Service{
		spot:     spot,
		exchange: exchange,
		log:      log,
		now:      time.Now,
	}
}

// CurrencyRates fetches the Bitcoin spot price in EUR, last month's average
// EUR-to-GBP rate, and today's rate, concurrently, and derives the Bitcoin
// price in GBP.
//
// The reported eur_to_gbp is the last-month rate, while bitcoin_gbp is
// derived with today's rate; the two can differ.
func (s *Service) CurrencyRates(ctx context.Context) Snapshot {
	lastMonth := LastMonthRange(s.now())

	var (
		wg sync.WaitGroup

		btcEUR, rateLastMonth, rateToday float64
		btcOK, lastMonthOK, todayOK      bool
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		btcEUR, btcOK = s.spot.BitcoinPriceEUR(ctx)
	}()
	go func() {
		defer wg.Done()
		rateLastMonth, lastMonthOK = s.exchange.EURToGBPRate(ctx, &lastMonth)
	}()
	go func() {
		defer wg.Done()
		rateToday, todayOK = s.exchange.EURToGBPRate(ctx, nil)
	}()
	wg.Wait()

	var snap Snapshot
	if btcOK {
		snap.BitcoinEUR = &btcEUR
	}
	if lastMonthOK {
		snap.EURToGBP = &rateLastMonth
	}
	if btcOK && todayOK && rateToday != 0 {
		gbp := btcEUR / rateToday
		snap.BitcoinGBP = &gbp
	}

	s.log.Debug("currency rates aggregated",
		logger.Bool("bitcoin_eur", btcOK),
		logger.Bool("eur_to_gbp", lastMonthOK),
		logger.Bool("bitcoin_gbp", snap.BitcoinGBP != nil))

	return snap
}

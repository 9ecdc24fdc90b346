// Package rates aggregates currency data from two independent upstream
// APIs: the Blockchain.com ticker and the ECB statistical time series.
// Upstream instability never propagates as an error; every failure path
// degrades to an absent value so the rates endpoint always answers.
package rates

import (
	"context"
	"encoding/json"

	"github.com/webscope/siteinfo/internal/logger"
)

// Fetcher is the outbound GET contract shared by both rate clients.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// BlockchainClient reads spot prices from the Blockchain.com ticker API.
type BlockchainClient struct {
	fetcher Fetcher
	baseURL string
	log     logger.Logger
}

func NewBlockchainClient(fetcher Fetcher, baseURL string, log logger.Logger) *BlockchainClient {
	return &BlockchainClient{fetcher: fetcher, baseURL: baseURL, log: log}
}

// tickerEntry is one currency's block in the ticker response; only the
// 15-minute-delayed price is used.
type tickerEntry struct {
	M15 *float64 `json:"15m"`
}

// BitcoinPriceEUR returns the 15-minute-delayed Bitcoin price in EUR.
// A missing EUR entry, a missing price field, or any transport/decode
// problem yields (0, false); the cause is logged for diagnostics.
func (c *BlockchainClient) BitcoinPriceEUR(ctx context.Context) (float64, bool) {
	body, err := c.fetcher.Get(ctx, c.baseURL+"/ticker")
	if err != nil {
		c.log.Warn("ticker request failed", logger.Error(err))
		return 0, false
	}

	var ticker map[string]tickerEntry
	if err := json.Unmarshal(body, &ticker); err != nil {
		c.log.Warn("ticker response is not valid json", logger.Error(err))
		return 0, false
	}

	entry, ok := ticker["EUR"]
	if !ok || entry.M15 == nil {
		c.log.Warn("ticker response has no EUR 15m price")
		return 0, false
	}
	return *entry.M15, true
}

package rates

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/webscope/siteinfo/internal/logger"
)

type fakeSpot struct {
	price float64
	ok    bool
}

func (f *fakeSpot) BitcoinPriceEUR(context.Context) (float64, bool) {
	return f.price, f.ok
}

// fakeExchange answers differently for ranged (last month) and unranged
// (today) lookups. The aggregator calls it from concurrent goroutines.
type fakeExchange struct {
	lastMonth   float64
	lastMonthOK bool
	today       float64
	todayOK     bool

	mu        sync.Mutex
	gotRanges []*DateRange
}

func (f *fakeExchange) EURToGBPRate(_ context.Context, dr *DateRange) (float64, bool) {
	f.mu.Lock()
	f.gotRanges = append(f.gotRanges, dr)
	f.mu.Unlock()
	if dr != nil {
		return f.lastMonth, f.lastMonthOK
	}
	return f.today, f.todayOK
}

func newTestService(spot *fakeSpot, exchange *fakeExchange) *Service {
	s := NewService(spot, exchange, logger.Nop())
	s.now = func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestCurrencyRatesAllPresent(t *testing.T) {
	spot := &fakeSpot{price: 50000.0, ok: true}
	exchange := &fakeExchange{lastMonth: 1.2, lastMonthOK: true, today: 1.2, todayOK: true}

	snap := newTestService(spot, exchange).CurrencyRates(context.Background())

	if snap.BitcoinEUR == nil || *snap.BitcoinEUR != 50000.0 {
		t.Errorf("BitcoinEUR = %v, want 50000.0", snap.BitcoinEUR)
	}
	if snap.EURToGBP == nil || *snap.EURToGBP != 1.2 {
		t.Errorf("EURToGBP = %v, want 1.2", snap.EURToGBP)
	}
	if snap.BitcoinGBP == nil || math.Abs(*snap.BitcoinGBP-50000.0/1.2) > 1e-9 {
		t.Errorf("BitcoinGBP = %v, want %v", snap.BitcoinGBP, 50000.0/1.2)
	}
}

func TestCurrencyRatesReportsLastMonthButConvertsWithToday(t *testing.T) {
	// The reported eur_to_gbp is the last-month rate; the GBP conversion
	// uses today's rate. They must be allowed to differ.
	spot := &fakeSpot{price: 50000.0, ok: true}
	exchange := &fakeExchange{lastMonth: 1.1, lastMonthOK: true, today: 1.2, todayOK: true}

	snap := newTestService(spot, exchange).CurrencyRates(context.Background())

	if snap.EURToGBP == nil || *snap.EURToGBP != 1.1 {
		t.Errorf("EURToGBP = %v, want the last-month rate 1.1", snap.EURToGBP)
	}
	if snap.BitcoinGBP == nil || math.Abs(*snap.BitcoinGBP-50000.0/1.2) > 1e-9 {
		t.Errorf("BitcoinGBP = %v, want conversion with today's rate %v", snap.BitcoinGBP, 50000.0/1.2)
	}
}

func TestCurrencyRatesQueriesLastFullMonth(t *testing.T) {
	spot := &fakeSpot{price: 50000.0, ok: true}
	exchange := &fakeExchange{lastMonthOK: true, todayOK: true, lastMonth: 1.2, today: 1.2}

	newTestService(spot, exchange).CurrencyRates(context.Background())

	var ranged *DateRange
	var unranged int
	for _, dr := range exchange.gotRanges {
		if dr == nil {
			unranged++
			continue
		}
		ranged = dr
	}
	if unranged != 1 {
		t.Errorf("unranged lookups = %d, want 1", unranged)
	}
	if ranged == nil {
		t.Fatal("expected one ranged lookup")
	}
	if ranged.Start != "2024-02-01" || ranged.End != "2024-02-29" {
		t.Errorf("ranged lookup = %s..%s, want 2024-02-01..2024-02-29", ranged.Start, ranged.End)
	}
}

func TestCurrencyRatesDegradation(t *testing.T) {
	tests := []struct {
		name     string
		spot     *fakeSpot
		exchange *fakeExchange

		wantBTCEUR *float64
		wantRate   *float64
		wantBTCGBP bool
	}{
		{
			name:       "spot price absent",
			spot:       &fakeSpot{ok: false},
			exchange:   &fakeExchange{lastMonth: 1.2, lastMonthOK: true, today: 1.2, todayOK: true},
			wantRate:   ptr(1.2),
			wantBTCGBP: false,
		},
		{
			name:       "today rate absent keeps last month rate",
			spot:       &fakeSpot{price: 50000.0, ok: true},
			exchange:   &fakeExchange{lastMonth: 1.2, lastMonthOK: true, todayOK: false},
			wantBTCEUR: ptr(50000.0),
			wantRate:   ptr(1.2),
			wantBTCGBP: false,
		},
		{
			name:       "last month rate absent still converts with today",
			spot:       &fakeSpot{price: 50000.0, ok: true},
			exchange:   &fakeExchange{lastMonthOK: false, today: 1.2, todayOK: true},
			wantBTCEUR: ptr(50000.0),
			wantBTCGBP: true,
		},
		{
			name:       "zero today rate never divides",
			spot:       &fakeSpot{price: 50000.0, ok: true},
			exchange:   &fakeExchange{lastMonth: 1.2, lastMonthOK: true, today: 0, todayOK: true},
			wantBTCEUR: ptr(50000.0),
			wantRate:   ptr(1.2),
			wantBTCGBP: false,
		},
		{
			name:       "everything absent",
			spot:       &fakeSpot{ok: false},
			exchange:   &fakeExchange{},
			wantBTCGBP: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := newTestService(tt.spot, tt.exchange).CurrencyRates(context.Background())

			if !floatPtrEq(snap.BitcoinEUR, tt.wantBTCEUR) {
				t.Errorf("BitcoinEUR = %v, want %v", fmtPtr(snap.BitcoinEUR), fmtPtr(tt.wantBTCEUR))
			}
			if !floatPtrEq(snap.EURToGBP, tt.wantRate) {
				t.Errorf("EURToGBP = %v, want %v", fmtPtr(snap.EURToGBP), fmtPtr(tt.wantRate))
			}
			if got := snap.BitcoinGBP != nil; got != tt.wantBTCGBP {
				t.Errorf("BitcoinGBP present = %v, want %v", got, tt.wantBTCGBP)
			}
		})
	}
}

func ptr(v float64) *float64 { return &v }

func floatPtrEq(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func fmtPtr(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

package rates

import (
	"testing"
	"time"
)

func TestLastMonthRange(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		wantStart string
		wantEnd   string
	}{
		{
			name:      "mid month",
			today:     time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
			wantStart: "2024-02-01",
			wantEnd:   "2024-02-29",
		},
		{
			name:      "first day of month",
			today:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantStart: "2024-02-01",
			wantEnd:   "2024-02-29",
		},
		{
			name:      "january wraps to december of previous year",
			today:     time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			wantStart: "2023-12-01",
			wantEnd:   "2023-12-31",
		},
		{
			name:      "non leap february",
			today:     time.Date(2023, 3, 31, 23, 59, 0, 0, time.UTC),
			wantStart: "2023-02-01",
			wantEnd:   "2023-02-28",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dr := LastMonthRange(tt.today)
			if dr.Start != tt.wantStart {
				t.Errorf("LastMonthRange().Start = %q, want %q", dr.Start, tt.wantStart)
			}
			if dr.End != tt.wantEnd {
				t.Errorf("LastMonthRange().End = %q, want %q", dr.End, tt.wantEnd)
			}
		})
	}
}

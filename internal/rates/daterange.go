package rates

import "time"

// dateLayout is the ISO day format used for ECB period bounds and cache keys.
const dateLayout = "2006-01-02"

// DateRange bounds an ECB time-series query, both ends inclusive, in
// YYYY-MM-DD form. A nil *DateRange means "no bounds": the upstream then
// returns its latest available observation.
type DateRange struct {
	Start string
	End   string
}

// LastMonthRange returns the last full calendar month before today: from
// the first day of the previous month through the day before the first day
// of the current month.
func LastMonthRange(today time.Time) DateRange {
	firstOfCurrent := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	end := firstOfCurrent.AddDate(0, 0, -1)
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, end.Location())
	return DateRange{
		Start: start.Format(dateLayout),
		End:   end.Format(dateLayout),
	}
}

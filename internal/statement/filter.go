package statement

import (
	"errors"
	"fmt"
	"time"
)

var InvalidRangeError = errors.New("invalid statement date range")

type FilterKind string

const (
	All    FilterKind = "all"
	Day    FilterKind = "day"
	Week   FilterKind = "week"
	Month  FilterKind = "month"
	Custom FilterKind = "custom"
)

const _dateLayout = "2006-01-02"

// Filter selects closed trades by exit timestamp. From/To are used only by
// the custom kind and are inclusive of both endpoint days.
type Filter struct {
	Kind FilterKind
	From time.Time
	To   time.Time
}

func ParseFilter(kind, fromDate, toDate string) (Filter, error) {
	f := Filter{Kind: FilterKind(kind)}
	if kind == "" {
		f.Kind = All
	}

	switch f.Kind {
	case All, Day, Week, Month:
		return f, nil
	case Custom:
	default:
		return Filter{}, fmt.Errorf("%w: unknown filter type %q", InvalidRangeError, kind)
	}

	from, err := time.Parse(_dateLayout, fromDate)
	if err != nil {
		return Filter{}, fmt.Errorf("%w: can't parse from_date %q, use YYYY-MM-DD", InvalidRangeError, fromDate)
	}
	to, err := time.Parse(_dateLayout, toDate)
	if err != nil {
		return Filter{}, fmt.Errorf("%w: can't parse to_date %q, use YYYY-MM-DD", InvalidRangeError, toDate)
	}

	f.From, f.To = from, to
	return f, nil
}

// Validate rejects impossible custom ranges before any external call is made:
// from must not be after to, and to must not be in the future.
func (f Filter) Validate(now time.Time) error {
	if f.Kind != Custom {
		return nil
	}
	if f.From.IsZero() || f.To.IsZero() {
		return fmt.Errorf("%w: custom filter requires from_date and to_date", InvalidRangeError)
	}
	if f.From.After(f.To) {
		return fmt.Errorf("%w: from_date %s is after to_date %s",
			InvalidRangeError, f.From.Format(_dateLayout), f.To.Format(_dateLayout))
	}
	if f.To.After(endOfDay(now)) {
		return fmt.Errorf("%w: to_date %s is in the future", InvalidRangeError, f.To.Format(_dateLayout))
	}
	return nil
}

// Contains reports whether a trade exited at ts falls inside the filter
// window relative to now. Day and month are calendar windows, week is a
// trailing 7-day window.
func (f Filter) Contains(ts, now time.Time) bool {
	switch f.Kind {
	case Day:
		return !ts.Before(startOfDay(now)) && !ts.After(now)
	case Week:
		return !ts.Before(now.AddDate(0, 0, -7)) && !ts.After(now)
	case Month:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return !ts.Before(monthStart) && !ts.After(now)
	case Custom:
		return !ts.Before(startOfDay(f.From)) && !ts.After(endOfDay(f.To))
	default:
		return true
	}
}

// QueryParams renders the filter for the engine's pnl_statement endpoint.
func (f Filter) QueryParams() (filterType, fromDate, toDate string) {
	if f.Kind != Custom {
		return string(f.Kind), "", ""
	}
	return string(f.Kind), f.From.Format(_dateLayout), f.To.Format(_dateLayout)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

package query

import (
	"fmt"
	"time"
)

const (
	RangeToday       = "today"
	RangeYesterday   = "yesterday"
	RangeLastWeek    = "lastWeek"
	RangeTwoWeeksAgo = "twoWeeksAgo"
)

// DateRange is a half-open interval [Start, End).
type DateRange struct {
	Name  string
	Start time.Time
	End   time.Time
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

func (r DateRange) IsAfter(t time.Time) bool {
	return !t.Before(r.End)
}

func (r DateRange) IsBefore(t time.Time) bool {
	return t.Before(r.Start)
}

// rangeBounds gives each synthetic range as day offsets from the start of
// the current local day.
var rangeBounds = map[string][2]int{
	RangeToday:       {0, 1},
	RangeYesterday:   {-1, 0},
	RangeLastWeek:    {-7, 1},
	RangeTwoWeeksAgo: {-14, 1},
}

// DateRangeNames lists the synthetic range names accepted by date properties.
func DateRangeNames() []string {
	return []string{RangeToday, RangeYesterday, RangeLastWeek, RangeTwoWeeksAgo}
}

// DateRangeByName resolves a synthetic range name relative to the local
// day of now.
func DateRangeByName(name string, now time.Time) (DateRange, bool) {
	bounds, ok := rangeBounds[name]
	if !ok {
		return DateRange{}, false
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	return DateRange{
		Name:  name,
		Start: midnight.AddDate(0, 0, bounds[0]),
		End:   midnight.AddDate(0, 0, bounds[1]),
	}, true
}

func matchDateAfter(target, value string, now time.Time) (bool, error) {
	return compareDate(target, value, now, DateRange.IsAfter)
}

func matchDateBefore(target, value string, now time.Time) (bool, error) {
	return compareDate(target, value, now, DateRange.IsBefore)
}

func matchDateWithin(target, value string, now time.Time) (bool, error) {
	return compareDate(target, value, now, DateRange.Contains)
}

// compareDate parses target as Unix milliseconds and tests it against the
// named range resolved relative to now.
func compareDate(target, value string, now time.Time, test func(DateRange, time.Time) bool) (bool, error) {
	millis, err := parseLong(target)
	if err != nil {
		return false, err
	}

	dateRange, ok := DateRangeByName(value, now)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownDateRange, value)
	}

	return test(dateRange, time.UnixMilli(millis)), nil
}

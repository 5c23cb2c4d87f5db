package tqsdk

import (
	"fmt"
	"time"

	"github.com/0xc0d3d00d/tqfeed/internal/domain"
)

// Source tags every record produced by this datafeed.
const Source = "TQ"

// Night sessions trade past local midnight, so series queries reach one
// calendar day beyond the requested end.
const endExtensionDays = 1

var barDurations = map[domain.Interval]time.Duration{
	domain.IntervalMinute: time.Minute,
	domain.IntervalHour:   time.Hour,
	domain.IntervalDaily:  24 * time.Hour,
}

func toTqSymbol(symbol string, exchange domain.Exchange) string {
	return fmt.Sprintf("%s.%s", exchange, symbol)
}

func barDurationSeconds(interval domain.Interval) (int, bool) {
	d, ok := barDurations[interval]
	if !ok {
		return 0, false
	}
	return int(d / time.Second), true
}

func extendEnd(end time.Time) time.Time {
	return end.AddDate(0, 0, endExtensionDays)
}

type set[M comparable] map[M]struct{}

func newSet[M comparable](values []M) set[M] {
	s := make(set[M], len(values))
	for _, v := range values {
		s.add(v)
	}
	return s
}

func (s set[M]) add(v M) {
	s[v] = struct{}{}
}

func (s set[M]) has(v M) bool {
	_, ok := s[v]
	return ok
}

package domain

import (
	"errors"
	"strings"
)

var ErrInvalidInterval = errors.New("invalid interval")

type Interval string

const (
	IntervalMinute Interval = "1m"
	IntervalHour   Interval = "1h"
	IntervalDaily  Interval = "d"
	IntervalWeekly Interval = "w"
	IntervalTick   Interval = "tick"
)

func (i Interval) String() string {
	return string(i)
}

func ParseInterval(s string) (Interval, error) {
	i, ok := stringToInterval[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrInvalidInterval
	}
	return i, nil
}

var stringToInterval = map[string]Interval{
	"1m":     IntervalMinute,
	"minute": IntervalMinute,
	"1h":     IntervalHour,
	"hour":   IntervalHour,
	"d":      IntervalDaily,
	"daily":  IntervalDaily,
	"w":      IntervalWeekly,
	"weekly": IntervalWeekly,
	"tick":   IntervalTick,
}

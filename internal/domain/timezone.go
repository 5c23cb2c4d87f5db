package domain

import (
	"time"
	_ "time/tzdata"
)

// ChinaTZ is the local zone of every exchange the datafeed serves.
var ChinaTZ = loadChinaTZ()

func loadChinaTZ() *time.Location {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}

// InChinaTZ keeps the wall clock of t and labels it with ChinaTZ.
func InChinaTZ(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), ChinaTZ)
}

package domain

import "time"

// HistoryRequest asks for historical data of one instrument. Start and End
// are exchange-local wall-clock times, their location is ignored.
type HistoryRequest struct {
	Symbol   string
	Exchange Exchange
	Interval Interval
	Start    time.Time
	End      time.Time
}

type BarData struct {
	Symbol       string
	Exchange     Exchange
	Interval     Interval
	Datetime     time.Time
	Open         float64
	High         float64
	Low          float64
	Close        float64
	Volume       float64
	OpenInterest float64
	Source       string
}

type TickData struct {
	Symbol       string
	Exchange     Exchange
	Datetime     time.Time
	High         float64
	Low          float64
	Last         float64
	Volume       float64
	OpenInterest float64
	BidPrice1    float64
	BidVolume1   float64
	AskPrice1    float64
	AskVolume1   float64
	Source       string
}

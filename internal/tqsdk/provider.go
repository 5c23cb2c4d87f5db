package tqsdk

import (
	"context"
	"time"
)

// Auth carries the account used to open a provider session.
type Auth struct {
	Username string
	Password string
}

// Interface requirements for the market data provider
type Provider interface {
	Connect(ctx context.Context, auth Auth) (Session, error)
}

// Session is one connection to the provider. Start and end boundaries passed
// to the series queries are exchange-local wall-clock times.
type Session interface {
	// Quotes lists the provider symbols known when the session started.
	Quotes() []string
	// KlineSeries returns a nil table when the provider has no result.
	KlineSeries(ctx context.Context, symbol string, durationSeconds int, start, end time.Time) (*KlineTable, error)
	// TickSeries returns a nil table when the provider has no result.
	TickSeries(ctx context.Context, symbol string, start, end time.Time) (*TickTable, error)
	Close() error
}

type KlineTable struct {
	Rows []KlineRow
}

// KlineRow is one row of a kline series. Datetime is nanoseconds since the
// Unix epoch.
type KlineRow struct {
	Datetime int64   `csv:"datetime"`
	Open     float64 `csv:"open"`
	High     float64 `csv:"high"`
	Low      float64 `csv:"low"`
	Close    float64 `csv:"close"`
	Volume   float64 `csv:"volume"`
	OpenOI   float64 `csv:"open_oi"`
}

type TickTable struct {
	Rows []TickRow
}

type TickRow struct {
	Datetime     int64   `csv:"datetime"`
	Highest      float64 `csv:"highest"`
	Lowest       float64 `csv:"lowest"`
	LastPrice    float64 `csv:"last_price"`
	Volume       float64 `csv:"volume"`
	OpenInterest float64 `csv:"open_interest"`
	BidPrice1    float64 `csv:"bid_price1"`
	BidVolume1   float64 `csv:"bid_volume1"`
	AskPrice1    float64 `csv:"ask_price1"`
	AskVolume1   float64 `csv:"ask_volume1"`
}

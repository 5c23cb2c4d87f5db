package domain

import (
	"context"
	"errors"
)

// ErrNoData reports that a query cannot be served at all, as opposed to a
// query that was served and matched nothing.
var ErrNoData = errors.New("no data")

// Datafeed is the platform contract for historical market data sources.
type Datafeed interface {
	Initialize(ctx context.Context) error
	QueryBarHistory(ctx context.Context, req HistoryRequest) ([]BarData, error)
	QueryTickHistory(ctx context.Context, req HistoryRequest) ([]TickData, error)
}

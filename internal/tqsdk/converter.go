package tqsdk

import (
	"time"

	"github.com/0xc0d3d00d/tqfeed/internal/domain"
)

// chinaOffset converts the provider's UTC wall clock into Shanghai wall clock.
const chinaOffset = 8 * time.Hour

func toChinaTime(datetime int64) time.Time {
	return domain.InChinaTZ(time.Unix(0, datetime).UTC().Add(chinaOffset))
}

func toBars(req domain.HistoryRequest, t *KlineTable) []domain.BarData {
	if t == nil {
		return []domain.BarData{}
	}

	bars := make([]domain.BarData, 0, len(t.Rows))
	for _, row := range t.Rows {
		bars = append(bars, toBar(req, row))
	}

	return bars
}

func toBar(req domain.HistoryRequest, row KlineRow) domain.BarData {
	return domain.BarData{
		Symbol:       req.Symbol,
		Exchange:     req.Exchange,
		Interval:     req.Interval,
		Datetime:     toChinaTime(row.Datetime),
		Open:         row.Open,
		High:         row.High,
		Low:          row.Low,
		Close:        row.Close,
		Volume:       row.Volume,
		OpenInterest: row.OpenOI,
		Source:       Source,
	}
}

func toTicks(req domain.HistoryRequest, t *TickTable) []domain.TickData {
	if t == nil {
		return []domain.TickData{}
	}

	ticks := make([]domain.TickData, 0, len(t.Rows))
	for _, row := range t.Rows {
		ticks = append(ticks, toTick(req, row))
	}

	return ticks
}

func toTick(req domain.HistoryRequest, row TickRow) domain.TickData {
	return domain.TickData{
		Symbol:       req.Symbol,
		Exchange:     req.Exchange,
		Datetime:     toChinaTime(row.Datetime),
		High:         row.Highest,
		Low:          row.Lowest,
		Last:         row.LastPrice,
		Volume:       row.Volume,
		OpenInterest: row.OpenInterest,
		BidPrice1:    row.BidPrice1,
		BidVolume1:   row.BidVolume1,
		AskPrice1:    row.AskPrice1,
		AskVolume1:   row.AskVolume1,
		Source:       Source,
	}
}

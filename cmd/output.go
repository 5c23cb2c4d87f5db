package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/0xc0d3d00d/tqfeed/internal/domain"
	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
)

var ErrInvalidFormat = errors.New("invalid output format")

type barRecord struct {
	Datetime     string  `csv:"datetime"`
	Symbol       string  `csv:"symbol"`
	Exchange     string  `csv:"exchange"`
	Interval     string  `csv:"interval"`
	Open         float64 `csv:"open"`
	High         float64 `csv:"high"`
	Low          float64 `csv:"low"`
	Close        float64 `csv:"close"`
	Volume       float64 `csv:"volume"`
	OpenInterest float64 `csv:"open_interest"`
	Source       string  `csv:"source"`
}

type tickRecord struct {
	Datetime     string  `csv:"datetime"`
	Symbol       string  `csv:"symbol"`
	Exchange     string  `csv:"exchange"`
	Last         float64 `csv:"last_price"`
	High         float64 `csv:"high"`
	Low          float64 `csv:"low"`
	Volume       float64 `csv:"volume"`
	OpenInterest float64 `csv:"open_interest"`
	BidPrice1    float64 `csv:"bid_price_1"`
	BidVolume1   float64 `csv:"bid_volume_1"`
	AskPrice1    float64 `csv:"ask_price_1"`
	AskVolume1   float64 `csv:"ask_volume_1"`
	Source       string  `csv:"source"`
}

var (
	barHeader  = []string{"datetime", "symbol", "exchange", "interval", "open", "high", "low", "close", "volume", "open_interest"}
	tickHeader = []string{"datetime", "symbol", "exchange", "last", "bid_1", "bid_vol_1", "ask_1", "ask_vol_1", "volume", "open_interest"}
)

func validateFormat(format string) error {
	switch format {
	case formatTable, formatCSV:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}
}

func writeBars(w io.Writer, format string, bars []domain.BarData) error {
	if format == formatCSV {
		records := make([]barRecord, 0, len(bars))
		for _, bar := range bars {
			records = append(records, barRecord{
				Datetime:     bar.Datetime.Format(time.RFC3339Nano),
				Symbol:       bar.Symbol,
				Exchange:     bar.Exchange.String(),
				Interval:     bar.Interval.String(),
				Open:         bar.Open,
				High:         bar.High,
				Low:          bar.Low,
				Close:        bar.Close,
				Volume:       bar.Volume,
				OpenInterest: bar.OpenInterest,
				Source:       bar.Source,
			})
		}
		return gocsv.Marshal(&records, w)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(barHeader)
	for _, bar := range bars {
		table.Append([]string{
			bar.Datetime.Format(time.DateTime),
			bar.Symbol,
			bar.Exchange.String(),
			bar.Interval.String(),
			formatFloat(bar.Open),
			formatFloat(bar.High),
			formatFloat(bar.Low),
			formatFloat(bar.Close),
			formatFloat(bar.Volume),
			formatFloat(bar.OpenInterest),
		})
	}
	table.Render()

	return nil
}

func writeTicks(w io.Writer, format string, ticks []domain.TickData) error {
	if format == formatCSV {
		records := make([]tickRecord, 0, len(ticks))
		for _, tick := range ticks {
			records = append(records, tickRecord{
				Datetime:     tick.Datetime.Format(time.RFC3339Nano),
				Symbol:       tick.Symbol,
				Exchange:     tick.Exchange.String(),
				Last:         tick.Last,
				High:         tick.High,
				Low:          tick.Low,
				Volume:       tick.Volume,
				OpenInterest: tick.OpenInterest,
				BidPrice1:    tick.BidPrice1,
				BidVolume1:   tick.BidVolume1,
				AskPrice1:    tick.AskPrice1,
				AskVolume1:   tick.AskVolume1,
				Source:       tick.Source,
			})
		}
		return gocsv.Marshal(&records, w)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(tickHeader)
	for _, tick := range ticks {
		table.Append([]string{
			tick.Datetime.Format("2006-01-02 15:04:05.000"),
			tick.Symbol,
			tick.Exchange.String(),
			formatFloat(tick.Last),
			formatFloat(tick.BidPrice1),
			formatFloat(tick.BidVolume1),
			formatFloat(tick.AskPrice1),
			formatFloat(tick.AskVolume1),
			formatFloat(tick.Volume),
			formatFloat(tick.OpenInterest),
		})
	}
	table.Render()

	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

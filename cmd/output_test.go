package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/0xc0d3d00d/tqfeed/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBar = domain.BarData{
	Symbol:       "rb2501",
	Exchange:     domain.ExchangeSHFE,
	Interval:     domain.IntervalDaily,
	Datetime:     time.Date(2024, 1, 2, 8, 0, 0, 0, domain.ChinaTZ),
	Open:         3500,
	High:         3550.5,
	Low:          3480,
	Close:        3520,
	Volume:       12000,
	OpenInterest: 85000,
	Source:       "TQ",
}

func TestWriteBarsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBars(&buf, formatCSV, []domain.BarData{testBar}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "datetime,symbol,exchange,interval,open,high,low,close,volume,open_interest,source", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-02T08:00:00+08:00,rb2501,SHFE,d,"))
	assert.Contains(t, lines[1], "3550.5")
	assert.True(t, strings.HasSuffix(lines[1], ",TQ"))
}

func TestWriteBarsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBars(&buf, formatTable, []domain.BarData{testBar}))

	out := buf.String()
	assert.Contains(t, out, "2024-01-02 08:00:00")
	assert.Contains(t, out, "rb2501")
	assert.Contains(t, out, "3550.5")
}

func TestWriteTicksCSV(t *testing.T) {
	tick := domain.TickData{
		Symbol:     "rb2501",
		Exchange:   domain.ExchangeSHFE,
		Datetime:   time.Date(2024, 1, 2, 21, 0, 0, 500_000_000, domain.ChinaTZ),
		Last:       3521,
		BidPrice1:  3520,
		BidVolume1: 15,
		AskPrice1:  3521,
		AskVolume1: 32,
		Source:     "TQ",
	}

	var buf bytes.Buffer
	require.NoError(t, writeTicks(&buf, formatCSV, []domain.TickData{tick}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "datetime,symbol,exchange,last_price,"))
	assert.True(t, strings.HasPrefix(lines[1], "2024-01-02T21:00:00.5+08:00,rb2501,SHFE,3521,"))
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat(formatTable))
	assert.NoError(t, validateFormat(formatCSV))
	assert.ErrorIs(t, validateFormat("json"), ErrInvalidFormat)
}

package tqsdk

import (
	"testing"
	"time"

	"github.com/0xc0d3d00d/tqfeed/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestToTqSymbol(t *testing.T) {
	assert.Equal(t, "SHFE.rb2501", toTqSymbol("rb2501", domain.ExchangeSHFE))
	assert.Equal(t, "CZCE.SR501", toTqSymbol("SR501", domain.ExchangeCZCE))
}

func TestBarDurationSeconds(t *testing.T) {
	seconds, ok := barDurationSeconds(domain.IntervalHour)
	assert.True(t, ok)
	assert.Equal(t, 3600, seconds)

	_, ok = barDurationSeconds(domain.IntervalTick)
	assert.False(t, ok)

	_, ok = barDurationSeconds(domain.IntervalWeekly)
	assert.False(t, ok)
}

func TestExtendEnd(t *testing.T) {
	tests := []struct {
		end  time.Time
		want time.Time
	}{
		{time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, 2, 28, 15, 0, 0, 0, time.UTC), time.Date(2024, 2, 29, 15, 0, 0, 0, time.UTC)},
		{time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC), time.Date(2025, 1, 1, 23, 59, 59, 0, time.UTC)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extendEnd(tt.end))
	}
}

func TestToChinaTime(t *testing.T) {
	raw := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	got := toChinaTime(raw.UnixNano())

	assert.Equal(t, domain.ChinaTZ, got.Location())
	assert.Equal(t, time.Date(2024, 1, 2, 8, 0, 0, 0, domain.ChinaTZ), got)
	assert.True(t, got.Equal(raw))
}

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/0xc0d3d00d/tqfeed/internal/domain"
	"github.com/0xc0d3d00d/tqfeed/internal/tqsdk"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryFlagsToRequest(t *testing.T) {
	req, err := queryFlags{
		symbol:   "rb2501",
		exchange: "shfe",
		interval: "d",
		start:    "2024-01-01",
		end:      "2024-01-05 15:00:00",
	}.toRequest()
	require.NoError(t, err)

	assert.Equal(t, domain.HistoryRequest{
		Symbol:   "rb2501",
		Exchange: domain.ExchangeSHFE,
		Interval: domain.IntervalDaily,
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 1, 5, 15, 0, 0, 0, time.UTC),
	}, req)

	_, err = queryFlags{exchange: "NYSE", interval: "d"}.toRequest()
	assert.ErrorIs(t, err, domain.ErrInvalidExchange)

	_, err = queryFlags{exchange: "SHFE", interval: "5m"}.toRequest()
	assert.ErrorIs(t, err, domain.ErrInvalidInterval)

	_, err = queryFlags{exchange: "SHFE", interval: "d", start: "01/02/2024", end: "2024-01-05"}.toRequest()
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DATAFEED_USERNAME", "user")
	t.Setenv("DATAFEED_PASSWORD", "secret")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg := config{}
	require.NoError(t, loadConfig(&cfg))

	assert.Equal(t, "user", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "DEBUG", cfg.LogLevel.String())
}

func writeSnapshot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	fs := afero.NewOsFs()

	files := map[string]string{
		"quotes.csv": "symbol\nSHFE.rb2501\n",
		"klines/SHFE.rb2501/86400.csv": "datetime,open,high,low,close,volume,open_oi\n" +
			"1704153600000000000,3500,3550,3480,3520,12000,85000\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}

	return dir
}

func TestRunQuery(t *testing.T) {
	ctx := context.Background()
	dir := writeSnapshot(t)
	cfg := &config{
		Username:    "user",
		Password:    "secret",
		DataDir:     dir,
		MetricsFile: filepath.Join(t.TempDir(), "tqfeed.prom"),
	}

	req := domain.HistoryRequest{
		Symbol:   "rb2501",
		Exchange: domain.ExchangeSHFE,
		Interval: domain.IntervalDaily,
		Start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
	}

	var out bytes.Buffer
	require.NoError(t, runQuery(ctx, cfg, queryBars, req, formatCSV, &out))
	assert.Contains(t, out.String(), "2024-01-02T08:00:00+08:00,rb2501,SHFE,d,3500,")

	metrics, err := afero.ReadFile(afero.NewOsFs(), cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "tqfeed_queries_total")

	t.Run("no data is not an error", func(t *testing.T) {
		var out bytes.Buffer
		req := req
		req.Symbol = "XX99"
		require.NoError(t, runQuery(ctx, cfg, queryBars, req, formatCSV, &out))
		assert.Empty(t, strings.TrimSpace(out.String()))
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := &config{DataDir: dir}
		err := runQuery(ctx, cfg, queryBars, req, formatTable, &bytes.Buffer{})
		assert.ErrorIs(t, err, tqsdk.ErrMissingCredentials)
	})

	t.Run("invalid format", func(t *testing.T) {
		err := runQuery(ctx, cfg, queryBars, req, "json", &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestBarsCommand(t *testing.T) {
	dir := writeSnapshot(t)
	cfg := &config{Username: "user", Password: "secret", DataDir: dir}

	cmd := newRootCommand(cfg)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"bars", "--format", "csv", "--symbol", "rb2501", "--exchange", "SHFE", "--start", "2024-01-01", "--end", "2024-01-05"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "rb2501,SHFE,d,3500")

	t.Run("tick interval is not served as bars", func(t *testing.T) {
		cmd := newRootCommand(cfg)
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"bars", "--format", "csv", "--interval", "tick", "--symbol", "rb2501", "--exchange", "SHFE", "--start", "2024-01-01", "--end", "2024-01-05"})

		require.NoError(t, cmd.ExecuteContext(context.Background()))
		assert.Empty(t, strings.TrimSpace(out.String()))
	})
}

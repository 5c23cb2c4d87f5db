package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/0xc0d3d00d/tqfeed/internal/domain"
	"github.com/0xc0d3d00d/tqfeed/internal/snapshot"
	"github.com/0xc0d3d00d/tqfeed/internal/tqsdk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
)

var ErrInvalidTime = errors.New("invalid time")

var timeLayouts = []string{time.DateOnly, time.DateTime}

type queryFlags struct {
	symbol   string
	exchange string
	interval string
	start    string
	end      string
	format   string
}

func newRootCommand(cfg *config) *cobra.Command {
	root := &cobra.Command{
		Use:           "tqfeed",
		Short:         "Query TianQin historical market data through the platform datafeed",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("format", formatTable, "output format: table or csv")

	root.AddCommand(
		newBarsCommand(cfg),
		newTicksCommand(cfg),
	)

	return root
}

func newBarsCommand(cfg *config) *cobra.Command {
	flags := queryFlags{}
	cmd := &cobra.Command{
		Use:     "bars",
		Short:   "Query bar history",
		Example: "tqfeed bars --symbol rb2501 --exchange SHFE --interval d --start 2024-01-01 --end 2024-01-05",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.format, _ = cmd.Flags().GetString("format")
			req, err := flags.toRequest()
			if err != nil {
				return err
			}
			return runQuery(cmd.Context(), cfg, queryBars, req, flags.format, cmd.OutOrStdout())
		},
	}
	addRequestFlags(cmd, &flags)
	cmd.Flags().StringVar(&flags.interval, "interval", domain.IntervalDaily.String(), "bar interval: 1m, 1h or d")

	return cmd
}

func newTicksCommand(cfg *config) *cobra.Command {
	flags := queryFlags{interval: domain.IntervalTick.String()}
	cmd := &cobra.Command{
		Use:     "ticks",
		Short:   "Query tick history",
		Example: "tqfeed ticks --symbol rb2501 --exchange SHFE --start 2024-01-02 --end 2024-01-02",
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.format, _ = cmd.Flags().GetString("format")
			req, err := flags.toRequest()
			if err != nil {
				return err
			}
			return runQuery(cmd.Context(), cfg, queryTicks, req, flags.format, cmd.OutOrStdout())
		},
	}
	addRequestFlags(cmd, &flags)

	return cmd
}

func addRequestFlags(cmd *cobra.Command, flags *queryFlags) {
	cmd.Flags().StringVar(&flags.symbol, "symbol", "", "instrument code, e.g. rb2501")
	cmd.Flags().StringVar(&flags.exchange, "exchange", "", "exchange code, e.g. SHFE")
	cmd.Flags().StringVar(&flags.start, "start", "", "range start in exchange-local time")
	cmd.Flags().StringVar(&flags.end, "end", "", "range end in exchange-local time")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("exchange")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
}

func (f queryFlags) toRequest() (domain.HistoryRequest, error) {
	exchange, err := domain.ParseExchange(f.exchange)
	if err != nil {
		return domain.HistoryRequest{}, fmt.Errorf("%w: %s", err, f.exchange)
	}

	interval, err := domain.ParseInterval(f.interval)
	if err != nil {
		return domain.HistoryRequest{}, fmt.Errorf("%w: %s", err, f.interval)
	}

	start, err := parseTime(f.start)
	if err != nil {
		return domain.HistoryRequest{}, err
	}

	end, err := parseTime(f.end)
	if err != nil {
		return domain.HistoryRequest{}, err
	}

	return domain.HistoryRequest{
		Symbol:   f.symbol,
		Exchange: exchange,
		Interval: interval,
		Start:    start,
		End:      end,
	}, nil
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

// queryFunc runs one datafeed operation and writes its rows to out.
type queryFunc func(ctx context.Context, feed domain.Datafeed, req domain.HistoryRequest, format string, out io.Writer) error

func runQuery(ctx context.Context, cfg *config, run queryFunc, req domain.HistoryRequest, format string, out io.Writer) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	// OpenTelemetry metrics exported through a prometheus registry
	registry := prometheus.NewRegistry()
	exporter, err := otelprometheus.New(otelprometheus.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create metrics exporter: %w", err)
	}
	metricsProvider := metric.NewMeterProvider(metric.WithReader(exporter))
	defer metricsProvider.Shutdown(context.WithoutCancel(ctx))

	var feed domain.Datafeed
	feed, err = tqsdk.New(
		tqsdk.Config{Username: cfg.Username, Password: cfg.Password},
		snapshot.NewOsProvider(cfg.DataDir),
		tqsdk.WithMeterProvider(metricsProvider),
	)
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "querying history", "symbol", req.Symbol, "exchange", req.Exchange, "interval", req.Interval, "start", req.Start, "end", req.End)
	err = run(ctx, feed, req, format, out)

	if cfg.MetricsFile != "" {
		if werr := prometheus.WriteToTextfile(cfg.MetricsFile, registry); werr != nil {
			slog.ErrorContext(ctx, "failed to write metrics file", "metrics_file", cfg.MetricsFile, "error", werr)
		}
	}

	return err
}

func queryBars(ctx context.Context, feed domain.Datafeed, req domain.HistoryRequest, format string, out io.Writer) error {
	bars, err := feed.QueryBarHistory(ctx, req)
	if errors.Is(err, domain.ErrNoData) {
		slog.WarnContext(ctx, "datafeed cannot serve request", "reason", err)
		return nil
	}
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "received bars", "bar_count", len(bars))
	return writeBars(out, format, bars)
}

func queryTicks(ctx context.Context, feed domain.Datafeed, req domain.HistoryRequest, format string, out io.Writer) error {
	ticks, err := feed.QueryTickHistory(ctx, req)
	if errors.Is(err, domain.ErrNoData) {
		slog.WarnContext(ctx, "datafeed cannot serve request", "reason", err)
		return nil
	}
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "received ticks", "tick_count", len(ticks))
	return writeTicks(out, format, ticks)
}

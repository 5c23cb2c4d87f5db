package tqsdk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/0xc0d3d00d/tqfeed/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrMissingCredentials = errors.New("missing datafeed credentials")
	ErrSessionFailed      = errors.New("failed to open provider session")

	ErrUnknownSymbol       = fmt.Errorf("%w: unknown symbol", domain.ErrNoData)
	ErrTickInterval        = fmt.Errorf("%w: tick interval is not served as bars", domain.ErrNoData)
	ErrUnsupportedInterval = fmt.Errorf("%w: unsupported bar interval", domain.ErrNoData)
	ErrNotTickInterval     = fmt.Errorf("%w: interval is not tick", domain.ErrNoData)
)

var _ domain.Datafeed = (*Adapter)(nil)

type Config struct {
	Username string
	Password string
}

type Option func(*Adapter)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(a *Adapter) {
		a.meterProvider = mp
	}
}

// Adapter serves the platform datafeed contract from a TqSdk provider. Each
// history query runs on a fresh session that is closed before returning.
type Adapter struct {
	cfg           Config
	provider      Provider
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	metrics       *metrics

	mu      sync.Mutex
	state   State
	session Session
	// loaded by the first session reporting quotes and kept afterwards
	symbols set[string]
}

func New(cfg Config, provider Provider, opts ...Option) (*Adapter, error) {
	a := &Adapter{
		cfg:      cfg,
		provider: provider,
		state:    StateUninitialized,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.meterProvider == nil {
		a.meterProvider = otel.GetMeterProvider()
	}

	m, err := newMetrics(a.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	a.metrics = m

	return a, nil
}

func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Initialize opens a provider session unless one is already open.
func (a *Adapter) Initialize(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initialize(ctx)
}

func (a *Adapter) initialize(ctx context.Context) error {
	if a.state == StateReady {
		return nil
	}

	if a.cfg.Username == "" || a.cfg.Password == "" {
		a.metrics.recordSession(ctx, ErrMissingCredentials)
		return ErrMissingCredentials
	}

	session, err := a.provider.Connect(ctx, Auth{Username: a.cfg.Username, Password: a.cfg.Password})
	if err != nil {
		a.metrics.recordSession(ctx, err)
		a.logger.WarnContext(ctx, "failed to open provider session", "username", a.cfg.Username, "error", err)
		return fmt.Errorf("%w: %w", ErrSessionFailed, err)
	}
	a.metrics.recordSession(ctx, nil)

	if len(a.symbols) == 0 {
		a.symbols = newSet(session.Quotes())
		a.logger.DebugContext(ctx, "loaded provider symbols", "symbol_count", len(a.symbols))
	}

	a.session = session
	a.state = StateReady
	return nil
}

// Close releases the open session, if any.
func (a *Adapter) Close(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateReady {
		return nil
	}

	err := a.session.Close()
	a.session = nil
	a.state = StateClosed
	return err
}

func (a *Adapter) teardown(ctx context.Context) {
	if a.session != nil {
		if err := a.session.Close(); err != nil {
			a.logger.WarnContext(ctx, "failed to close provider session", "error", err)
		}
		a.session = nil
	}
	a.state = StateClosed
}

// QueryBarHistory returns an error wrapping domain.ErrNoData when the symbol
// or interval cannot be served, and an empty slice when the provider has no
// rows for the range.
func (a *Adapter) QueryBarHistory(ctx context.Context, req domain.HistoryRequest) ([]domain.BarData, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	began := time.Now()
	bars, err := a.queryBarHistory(ctx, req)
	a.metrics.recordQuery(ctx, queryKindBar, len(bars), err, time.Since(began))

	return bars, err
}

func (a *Adapter) queryBarHistory(ctx context.Context, req domain.HistoryRequest) ([]domain.BarData, error) {
	if err := a.initialize(ctx); err != nil {
		return nil, err
	}
	defer a.teardown(ctx)

	symbol := toTqSymbol(req.Symbol, req.Exchange)
	if !a.symbols.has(symbol) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	if req.Interval == domain.IntervalTick {
		return nil, ErrTickInterval
	}

	seconds, ok := barDurationSeconds(req.Interval)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedInterval, req.Interval)
	}

	end := extendEnd(req.End)
	a.logger.DebugContext(ctx, "query kline series", "symbol", symbol, "duration_seconds", seconds, "start", req.Start, "end", end)

	table, err := a.session.KlineSeries(ctx, symbol, seconds, req.Start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query kline series `%s`: %w", symbol, err)
	}

	return toBars(req, table), nil
}

// QueryTickHistory follows the same result conventions as QueryBarHistory.
func (a *Adapter) QueryTickHistory(ctx context.Context, req domain.HistoryRequest) ([]domain.TickData, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	began := time.Now()
	ticks, err := a.queryTickHistory(ctx, req)
	a.metrics.recordQuery(ctx, queryKindTick, len(ticks), err, time.Since(began))

	return ticks, err
}

func (a *Adapter) queryTickHistory(ctx context.Context, req domain.HistoryRequest) ([]domain.TickData, error) {
	if err := a.initialize(ctx); err != nil {
		return nil, err
	}
	defer a.teardown(ctx)

	symbol := toTqSymbol(req.Symbol, req.Exchange)
	if !a.symbols.has(symbol) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbol)
	}

	if req.Interval != domain.IntervalTick {
		return nil, fmt.Errorf("%w: %s", ErrNotTickInterval, req.Interval)
	}

	end := extendEnd(req.End)
	a.logger.DebugContext(ctx, "query tick series", "symbol", symbol, "start", req.Start, "end", end)

	table, err := a.session.TickSeries(ctx, symbol, req.Start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query tick series `%s`: %w", symbol, err)
	}

	return toTicks(req, table), nil
}

package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"sort"
	"strconv"
	"time"

	"github.com/0xc0d3d00d/tqfeed/internal/domain"
	"github.com/0xc0d3d00d/tqfeed/internal/tqsdk"
	"github.com/gocarina/gocsv"
	"github.com/spf13/afero"
)

var (
	ErrSessionClosed = errors.New("session closed")
	ErrRootNotFound  = errors.New("snapshot root not found")
)

const (
	quotesFile = "quotes.csv"
	klinesDir  = "klines"
	ticksDir   = "ticks"
)

// data
// - quotes.csv
// - klines
//   - SHFE.rb2501
//     - 60.csv
//     - 86400.csv
// - ticks
//   - SHFE.rb2501.csv

type quoteRow struct {
	Symbol string `csv:"symbol"`
}

// Provider serves recorded TqSdk tables from a directory tree.
type Provider struct {
	fs      afero.Fs
	rootDir string
}

func New(fs afero.Fs, rootDir string) *Provider {
	return &Provider{
		fs:      fs,
		rootDir: rootDir,
	}
}

func NewOsProvider(rootDir string) *Provider {
	return New(afero.NewOsFs(), rootDir)
}

func (p *Provider) Connect(ctx context.Context, auth tqsdk.Auth) (tqsdk.Session, error) {
	rootExists, err := afero.DirExists(p.fs, p.rootDir)
	if err != nil {
		return nil, err
	}
	if !rootExists {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, p.rootDir)
	}

	f, err := p.fs.Open(path.Join(p.rootDir, quotesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open quotes file: %w", err)
	}
	defer f.Close()

	var rows []quoteRow
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode quotes file: %w", err)
	}

	quotes := make([]string, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, row.Symbol)
	}

	slog.DebugContext(ctx, "snapshot session opened", "root_dir", p.rootDir, "username", auth.Username, "quote_count", len(quotes))

	return &session{
		fs:      p.fs,
		rootDir: p.rootDir,
		quotes:  quotes,
	}, nil
}

type session struct {
	fs      afero.Fs
	rootDir string
	quotes  []string
	closed  bool
}

func (s *session) Quotes() []string {
	return s.quotes
}

func (s *session) KlineSeries(ctx context.Context, symbol string, durationSeconds int, start, end time.Time) (*tqsdk.KlineTable, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}

	filename := path.Join(s.rootDir, klinesDir, symbol, strconv.Itoa(durationSeconds)+".csv")
	var rows []tqsdk.KlineRow
	found, err := s.readTable(filename, &rows)
	if err != nil || !found {
		return nil, err
	}

	from, to := bounds(start, end)
	selected := make([]tqsdk.KlineRow, 0, len(rows))
	for _, row := range rows {
		if row.Datetime >= from && row.Datetime <= to {
			selected = append(selected, row)
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Datetime < selected[j].Datetime
	})

	slog.DebugContext(ctx, "kline series", "symbol", symbol, "duration_seconds", durationSeconds, "row_count", len(selected))
	return &tqsdk.KlineTable{Rows: selected}, nil
}

func (s *session) TickSeries(ctx context.Context, symbol string, start, end time.Time) (*tqsdk.TickTable, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}

	filename := path.Join(s.rootDir, ticksDir, symbol+".csv")
	var rows []tqsdk.TickRow
	found, err := s.readTable(filename, &rows)
	if err != nil || !found {
		return nil, err
	}

	from, to := bounds(start, end)
	selected := make([]tqsdk.TickRow, 0, len(rows))
	for _, row := range rows {
		if row.Datetime >= from && row.Datetime <= to {
			selected = append(selected, row)
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Datetime < selected[j].Datetime
	})

	slog.DebugContext(ctx, "tick series", "symbol", symbol, "row_count", len(selected))
	return &tqsdk.TickTable{Rows: selected}, nil
}

func (s *session) Close() error {
	s.closed = true
	return nil
}

// readTable decodes filename into out. A missing file is not an error, the
// provider simply has no table for that series.
func (s *session) readTable(filename string, out any) (bool, error) {
	f, err := s.fs.Open(filename)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open `%s`: %w", filename, err)
	}
	defer f.Close()

	if err := gocsv.Unmarshal(f, out); err != nil {
		return false, fmt.Errorf("failed to decode `%s`: %w", filename, err)
	}

	return true, nil
}

// bounds converts exchange-local wall-clock boundaries into the nanosecond
// epoch timestamps stored in the tables.
func bounds(start, end time.Time) (int64, int64) {
	return domain.InChinaTZ(start).UnixNano(), domain.InChinaTZ(end).UnixNano()
}

package scraper

import (
	"context"
	"errors"
	"sync"
	"time"

	"edtctl/pkg/timetable"
)

var (
	// ErrSuperseded is returned by a Load whose result arrived after a newer Load started
	ErrSuperseded = errors.New("fetch superseded by a newer request")
	// ErrLoaderClosed is returned once the consumer of the Loader is gone
	ErrLoaderClosed = errors.New("loader closed")
)

// FetchFunc fetches the week containing date
type FetchFunc func(ctx context.Context, date time.Time) ([]timetable.DaySchedule, error)

// Loader allows at most one live fetch per view. Starting a new Load cancels the previous
// one and its result is discarded instead of replacing newer state.
type Loader struct {
	fetch FetchFunc

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	closed bool
}

// NewLoader wraps fetch, usually (*Client).FetchWeek.
func NewLoader(fetch FetchFunc) *Loader {
	return &Loader{fetch: fetch}
}

// Load fetches the week containing date. It returns ErrSuperseded if another Load was
// started meanwhile, and ErrLoaderClosed if Close was called.
func (l *Loader) Load(ctx context.Context, date time.Time) ([]timetable.DaySchedule, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil, ErrLoaderClosed
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()

	days, err := l.fetch(fetchCtx, date)

	l.mu.Lock()
	defer l.mu.Unlock()
	cancel()

	if l.closed {
		return nil, ErrLoaderClosed
	}
	if gen != l.gen {
		return nil, ErrSuperseded
	}
	l.cancel = nil
	return days, err
}

// Close discards the result of any in-flight Load and rejects new ones.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

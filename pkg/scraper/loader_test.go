package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"edtctl/pkg/timetable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_ReturnsResult(t *testing.T) {
	want := []timetable.DaySchedule{{Date: "Lundi"}}
	loader := NewLoader(func(ctx context.Context, date time.Time) ([]timetable.DaySchedule, error) {
		return want, nil
	})

	got, err := loader.Load(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoader_PassesFetchError(t *testing.T) {
	boom := errors.New("boom")
	loader := NewLoader(func(ctx context.Context, date time.Time) ([]timetable.DaySchedule, error) {
		return nil, boom
	})

	_, err := loader.Load(context.Background(), time.Now())
	assert.ErrorIs(t, err, boom)
}

func TestLoader_NewerLoadSupersedesOlder(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var firstCtxErr error

	first := time.Date(2025, 10, 13, 0, 0, 0, 0, time.Local)
	second := first.AddDate(0, 0, 7)

	loader := NewLoader(func(ctx context.Context, date time.Time) ([]timetable.DaySchedule, error) {
		if date.Equal(first) {
			close(started)
			<-release
			firstCtxErr = ctx.Err()
			return []timetable.DaySchedule{{Date: "stale"}}, nil
		}
		return []timetable.DaySchedule{{Date: "fresh"}}, nil
	})

	type result struct {
		days []timetable.DaySchedule
		err  error
	}
	done := make(chan result, 1)
	go func() {
		days, err := loader.Load(context.Background(), first)
		done <- result{days, err}
	}()

	<-started
	days, err := loader.Load(context.Background(), second)
	require.NoError(t, err)
	assert.Equal(t, "fresh", days[0].Date)

	close(release)
	old := <-done
	assert.ErrorIs(t, old.err, ErrSuperseded)
	assert.Nil(t, old.days)
	assert.ErrorIs(t, firstCtxErr, context.Canceled)
}

func TestLoader_Close(t *testing.T) {
	started := make(chan struct{})
	loader := NewLoader(func(ctx context.Context, date time.Time) ([]timetable.DaySchedule, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	errc := make(chan error, 1)
	go func() {
		_, err := loader.Load(context.Background(), time.Now())
		errc <- err
	}()

	<-started
	loader.Close()
	assert.ErrorIs(t, <-errc, ErrLoaderClosed)

	_, err := loader.Load(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrLoaderClosed)
}

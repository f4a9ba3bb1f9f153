package anim

import (
	"context"
	"errors"
	"time"
)

// ErrSchedulerDone is returned by a Scheduler that has no more frames.
var ErrSchedulerDone = errors.New("scheduler done")

// Scheduler paces the loop: Next blocks until the next frame is due.
type Scheduler interface {
	Next(ctx context.Context) error
}

// TickerScheduler fires at a fixed rate.
type TickerScheduler struct {
	ticker *time.Ticker
}

func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &TickerScheduler{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (s *TickerScheduler) Next(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ticker.C:
		return nil
	}
}

func (s *TickerScheduler) Stop() { s.ticker.Stop() }

// CountScheduler hands out a fixed number of frames back to back.
type CountScheduler struct {
	left int
}

func NewCountScheduler(frames int) *CountScheduler {
	return &CountScheduler{left: frames}
}

func (s *CountScheduler) Next(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.left <= 0 {
		return ErrSchedulerDone
	}
	s.left--
	return nil
}

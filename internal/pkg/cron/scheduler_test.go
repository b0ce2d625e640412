package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testScheduler() *Scheduler {
	return NewScheduler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRunOnce(t *testing.T) {
	s := testScheduler()

	var ran []string
	s.AddJob(Job{Name: "first", Interval: time.Hour, Fn: func(context.Context) error {
		ran = append(ran, "first")
		return nil
	}})
	s.AddJob(Job{Name: "second", Interval: time.Hour, Fn: func(context.Context) error {
		ran = append(ran, "second")
		return errors.New("boom")
	}})

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"first", "second"}, ran)
}

func TestAddJobDefaultsRunTimeout(t *testing.T) {
	s := testScheduler()
	s.AddJob(Job{Name: "sweep", Interval: time.Hour, Fn: func(context.Context) error { return nil }})
	assert.Equal(t, defaultRunTimeout, s.jobs[0].RunTimeout)
}

func TestStopWaitsForJobs(t *testing.T) {
	s := testScheduler()
	s.AddJob(Job{Name: "tick", Interval: 5 * time.Millisecond, Fn: func(context.Context) error { return nil }})
	s.Start()
	time.Sleep(20 * time.Millisecond)
	s.Stop()
}

package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"forexalert/internal/models"
	"forexalert/internal/scheduler"
)

// EventSource is the calendar adapter boundary.
type EventSource interface {
	Fetch(ctx context.Context) ([]models.Event, error)
}

// CycleResult summarizes one fetch-and-schedule pass.
type CycleResult struct {
	Fetched    int
	Scheduled  int
	PastSkips  int
	DupSkips   int
	FinishedAt time.Time
}

// Status is the health snapshot exposed over HTTP.
type Status struct {
	LastPollAt        *time.Time `json:"last_poll_at,omitempty"`
	LastPollError     string     `json:"last_poll_error,omitempty"`
	TotalScheduled    int        `json:"total_scheduled"`
	PendingTasks      int        `json:"pending_tasks"`
	IndexedIdentities int        `json:"indexed_identities"`
}

// Poller drives one poll cycle: fetch the calendar, feed every event through
// the scheduler. A fetch failure ends the cycle without touching the
// scheduler or the identity index, so a failed poll is never mistaken for
// "zero events today".
type Poller struct {
	Source    EventSource
	Scheduler *scheduler.Scheduler
	Logger    *zap.Logger

	mu             sync.Mutex
	lastPollAt     *time.Time
	lastPollErr    string
	totalScheduled int
}

// RunOnce executes a single cycle. The returned error is informational; the
// caller keeps polling regardless.
func (p *Poller) RunOnce(ctx context.Context) (CycleResult, error) {
	events, err := p.Source.Fetch(ctx)
	if err != nil {
		p.Logger.Warn("calendar fetch failed", zap.Error(err))
		p.recordCycle(time.Now(), err, 0)
		return CycleResult{}, err
	}

	res := CycleResult{Fetched: len(events)}
	for _, ev := range events {
		switch p.Scheduler.Schedule(ev) {
		case scheduler.Scheduled:
			res.Scheduled++
		case scheduler.SkippedPast:
			res.PastSkips++
		case scheduler.SkippedDuplicate:
			res.DupSkips++
		}
	}
	res.FinishedAt = time.Now()
	p.recordCycle(res.FinishedAt, nil, res.Scheduled)

	p.Logger.Info("poll cycle complete",
		zap.Int("fetched", res.Fetched),
		zap.Int("scheduled", res.Scheduled),
		zap.Int("skipped_past", res.PastSkips),
		zap.Int("skipped_duplicate", res.DupSkips),
	)
	return res, nil
}

func (p *Poller) recordCycle(at time.Time, err error, scheduled int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastPollAt = &at
	p.lastPollErr = ""
	if err != nil {
		p.lastPollErr = err.Error()
	}
	p.totalScheduled += scheduled
}

func (p *Poller) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		LastPollAt:        p.lastPollAt,
		LastPollError:     p.lastPollErr,
		TotalScheduled:    p.totalScheduled,
		PendingTasks:      p.Scheduler.PendingCount(),
		IndexedIdentities: p.Scheduler.IndexSize(),
	}
}

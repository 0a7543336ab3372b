package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"forexalert/internal/dedup"
	"forexalert/internal/models"
)

// Outcome classifies a Schedule call. Skips are expected control flow, not
// errors.
type Outcome int

const (
	Scheduled Outcome = iota
	SkippedPast
	SkippedDuplicate
)

func (o Outcome) String() string {
	switch o {
	case Scheduled:
		return "scheduled"
	case SkippedPast:
		return "skipped_past"
	case SkippedDuplicate:
		return "skipped_duplicate"
	default:
		return "unknown"
	}
}

// Sink receives the event when its warning task fires.
type Sink interface {
	Deliver(ctx context.Context, ev models.Event) error
}

const deliverTimeout = 15 * time.Second

// Scheduler registers one-shot warning tasks lead minutes ahead of each
// event. It is the only writer of the identity index; task payloads are
// captured at registration and never re-read, so a firing task and a
// concurrent poll cycle cannot race on event data.
type Scheduler struct {
	sink   Sink
	index  *dedup.Index
	lead   time.Duration
	grace  time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func New(sink Sink, index *dedup.Index, lead, grace time.Duration, logger *zap.Logger) *Scheduler {
	if grace <= 0 {
		grace = time.Minute
	}
	return &Scheduler{
		sink:    sink,
		index:   index,
		lead:    lead,
		grace:   grace,
		logger:  logger,
		now:     time.Now,
		pending: make(map[string]*time.Timer),
	}
}

// Schedule registers a one-shot warning task for ev unless its warning time
// has already passed or the event was scheduled before.
func (s *Scheduler) Schedule(ev models.Event) Outcome {
	fireAt := ev.Instant.Add(-s.lead)
	now := s.now()
	if !fireAt.After(now) {
		return SkippedPast
	}
	if !s.index.ShouldSchedule(ev.Identity) {
		return SkippedDuplicate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Defensive coalescing: the index normally prevents a second
	// registration, but a pending identity must never fire twice.
	if _, ok := s.pending[ev.Identity]; ok {
		return SkippedDuplicate
	}
	s.pending[ev.Identity] = time.AfterFunc(fireAt.Sub(now), func() {
		s.fire(ev, fireAt)
	})
	s.index.MarkScheduled(ev.Identity)

	s.logger.Info("warning scheduled",
		zap.String("currency", ev.Currency),
		zap.String("title", ev.Title),
		zap.Time("event_at", ev.Instant),
		zap.Time("fire_at", fireAt),
	)
	return Scheduled
}

// fire runs on the timer goroutine. A task firing later than the grace
// window is dropped rather than delivered stale; delivery failures are
// logged and never propagated or retried.
func (s *Scheduler) fire(ev models.Event, fireAt time.Time) {
	s.mu.Lock()
	delete(s.pending, ev.Identity)
	s.mu.Unlock()

	if late := s.now().Sub(fireAt); late > s.grace {
		s.logger.Warn("dropping stale warning task",
			zap.String("title", ev.Title),
			zap.Duration("late_by", late),
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()
	if err := s.sink.Deliver(ctx, ev); err != nil {
		s.logger.Warn("warning delivery failed",
			zap.String("currency", ev.Currency),
			zap.String("title", ev.Title),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("warning delivered",
		zap.String("currency", ev.Currency),
		zap.String("title", ev.Title),
	)
}

// IndexSize reports how many identities have ever been scheduled.
func (s *Scheduler) IndexSize() int {
	return s.index.Len()
}

// PendingCount reports how many registered tasks have not fired yet.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels outstanding timers. Pending tasks are abandoned, matching the
// no-persistence lifecycle.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
}

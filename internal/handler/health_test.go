package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"forexalert/internal/dedup"
	"forexalert/internal/models"
	"forexalert/internal/scheduler"
	"forexalert/internal/service"
)

type emptySource struct{}

func (emptySource) Fetch(context.Context) ([]models.Event, error) { return nil, nil }

type nopSink struct{}

func (nopSink) Deliver(context.Context, models.Event) error { return nil }

func newEngine(p *service.Poller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	(&HealthHandler{Poller: p}).Register(engine)
	return engine
}

func TestHealthz(t *testing.T) {
	sched := scheduler.New(nopSink{}, dedup.NewIndex(), 15*time.Minute, time.Minute, zap.NewNop())
	p := &service.Poller{Source: emptySource{}, Scheduler: sched, Logger: zap.NewNop()}

	w := httptest.NewRecorder()
	newEngine(p).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestReadyzBeforeAndAfterFirstPoll(t *testing.T) {
	sched := scheduler.New(nopSink{}, dedup.NewIndex(), 15*time.Minute, time.Minute, zap.NewNop())
	p := &service.Poller{Source: emptySource{}, Scheduler: sched, Logger: zap.NewNop()}
	engine := newEngine(p)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("before first poll: status = %d", w.Code)
	}

	if _, err := p.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("after first poll: status = %d", w.Code)
	}
	for _, key := range []string{"last_poll_at", "pending_tasks", "indexed_identities"} {
		if !strings.Contains(w.Body.String(), key) {
			t.Fatalf("snapshot missing %q: %s", key, w.Body.String())
		}
	}
}

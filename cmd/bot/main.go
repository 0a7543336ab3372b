package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"forexalert/internal/calendar"
	"forexalert/internal/config"
	cronrunner "forexalert/internal/cron"
	"forexalert/internal/dedup"
	"forexalert/internal/handler"
	"forexalert/internal/logger"
	"forexalert/internal/notifier"
	"forexalert/internal/scheduler"
	"forexalert/internal/service"
)

func main() {
	cfgPath := os.Getenv("FA_CONFIG")

	envOnly := false
	if raw := os.Getenv("FA_ENV_ONLY"); raw != "" {
		envOnly = strings.EqualFold(raw, "true") || raw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	loc, err := cfg.Calendar.Location()
	if err != nil {
		log.Warn("unparseable timezone, falling back to UTC",
			zap.String("timezone", cfg.Calendar.Timezone),
			zap.Error(err),
		)
	}

	currencies := cfg.Calendar.TrackedCurrencies()
	log.Info("starting forex alert bot",
		zap.String("timezone", loc.String()),
		zap.Strings("currencies", currencies),
		zap.Duration("poll_interval", cfg.Schedule.PollInterval),
		zap.Duration("lead_time", cfg.Schedule.LeadTime),
	)

	sink, err := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Schedule.LeadTime, loc)
	if err != nil {
		log.Fatal("telegram init failed", zap.Error(err))
	}

	sched := scheduler.New(sink, dedup.NewIndex(), cfg.Schedule.LeadTime, cfg.Schedule.MisfireGrace, log)
	defer sched.Stop()

	source := &calendar.Source{
		Client: calendar.NewClient(&http.Client{Timeout: cfg.Calendar.Timeout}, cfg.Calendar.URL),
		Parser: calendar.NewParser(loc, currencies),
		Logger: log,
	}
	poller := &service.Poller{
		Source:    source,
		Scheduler: sched,
		Logger:    log,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	(&handler.HealthHandler{Poller: poller}).Register(engine)
	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One immediate poll before the interval machinery, so warnings for
	// near-term events are not lost to a cold start.
	_, _ = poller.RunOnce(ctx)

	runner := cronrunner.New(log, ctx, loc)
	if _, err := runner.Add("@every "+cfg.Schedule.PollInterval.String(), func(ctx context.Context) {
		_, _ = poller.RunOnce(ctx)
	}); err != nil {
		log.Fatal("cron register poll failed", zap.Error(err))
	}
	runner.Start()
	defer runner.Stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/salon-sync/internal/audit"
	"github.com/BruksfildServices01/salon-sync/internal/bootstrap"
	"github.com/BruksfildServices01/salon-sync/internal/config"
	"github.com/BruksfildServices01/salon-sync/internal/jobs"
	"github.com/BruksfildServices01/salon-sync/internal/logger"
	"github.com/BruksfildServices01/salon-sync/internal/routes"
	"github.com/BruksfildServices01/salon-sync/internal/timezone"
	ucBooking "github.com/BruksfildServices01/salon-sync/internal/usecase/booking"
	ucSalon "github.com/BruksfildServices01/salon-sync/internal/usecase/salon"
)

func main() {
	cfg := config.Load()

	log, err := logger.Init(cfg.Logger)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	if !timezone.SetDefault(cfg.Timezone) {
		log.Warn("unknown timezone, using default",
			zap.String("timezone", cfg.Timezone),
			zap.String("default", timezone.DefaultTimezone),
		)
	}

	for _, p := range cfg.Params() {
		if p.Present {
			log.Info("connection parameter", zap.String("name", p.Name), zap.String("value", p.Value))
		} else {
			log.Warn("connection parameter", zap.String("name", p.Name), zap.String("value", p.Value))
		}
	}

	log.Info("starting salonsync",
		zap.String("env", cfg.Environment),
		zap.String("store", cfg.StoreDriver),
		zap.String("feed", cfg.FeedDriver),
		zap.Bool("s3", cfg.S3.Enabled()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	broker, err := bootstrap.OpenBroker(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer broker.Close()

	st, err := bootstrap.OpenStores(cfg, broker)
	if err != nil {
		return err
	}
	defer st.Close()

	// ======================================================
	// INFRA
	// ======================================================
	dispatcher := audit.NewDispatcher(audit.New(st.Audit), log)
	defer dispatcher.Close()

	now := timezone.Now

	hub := ucBooking.NewHub(
		ucBooking.NewSubscribeBookings(st.Bookings, broker, log, now),
		log,
	)
	if err := hub.Start(ctx); err != nil {
		// The hub keeps the error state; the dashboard can retry via reload.
		log.Error("bookings subscription failed", zap.Error(err))
	}
	defer hub.Close()

	cleanup := ucSalon.NewCleanupExpiredSessions(st.Salons, dispatcher)

	scheduler := jobs.NewScheduler(timezone.Default(), log)
	if err := scheduler.AddSessionCleanup(cfg.CleanupSchedule, cleanup); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		Config:     cfg,
		Log:        log,
		Now:        now,
		Bookings:   st.Bookings,
		Salons:     st.Salons,
		AuditStore: st.Audit,
		Audit:      dispatcher,
		Renderer:   bootstrap.Renderer(cfg),
		Hub:        hub,
		Cleanup:    cleanup,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		// Stream handlers return once the hub closes their watchers.
		hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

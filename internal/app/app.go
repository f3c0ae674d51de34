package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/ketabino/bookshop/internal/api"
	"github.com/ketabino/bookshop/internal/auth"
	"github.com/ketabino/bookshop/internal/domain/coupon"
	"github.com/ketabino/bookshop/internal/domain/order"
	"github.com/ketabino/bookshop/internal/localstore"
	"github.com/ketabino/bookshop/internal/realtime"
	"github.com/ketabino/bookshop/internal/repository"
	"github.com/ketabino/bookshop/internal/store"
	"github.com/ketabino/bookshop/pkg/health"
	"github.com/ketabino/bookshop/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr), zap.Bool("local_only", cfg.DatabaseURL == ""))

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))

	// Local snapshot store. Always present: reads are served from memory
	// backed by these snapshots even when PostgreSQL is up.
	local, err := localstore.Open(cfg.DataDir)
	if err != nil {
		return errors.Wrap(err, "open local store")
	}

	// Remote backend, skipped in local-only mode.
	var remote *store.Remote
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()

		if err := repository.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}

		healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
			return pool.Ping(ctx)
		})

		remote = &store.Remote{
			Books:      repository.NewBookRepository(pool),
			Categories: repository.NewCategoryRepository(pool),
			Orders:     repository.NewOrderRepository(pool),
			Users:      repository.NewUserRepository(pool),
			Coupons:    repository.NewCouponRepository(pool),
			Settings:   repository.NewSettingsRepository(pool),
		}
	}

	// Change subscriptions.
	hub := realtime.NewHub(lg.Named("realtime"))
	defer hub.Close()

	// State store: load from remote with local fallback, then start the
	// background sync worker.
	st := store.New(local, remote, hub.Broadcast, lg.Named("store"))
	if err := st.Load(ctx); err != nil {
		return errors.Wrap(err, "load store")
	}
	st.StartSync(ctx)

	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Domain services.
	couponValidator := coupon.NewRepoValidator(st.CouponStore())
	orderService := order.NewService(couponValidator, st.OrderStore(), st)

	// HTTP handlers.
	tokens := auth.NewTokens([]byte(cfg.TokenSecret), cfg.TokenTTL)
	h := api.NewHandler(st, orderService, couponValidator, tokens, hub, lg.Named("api"))

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	h.Routes(mux)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		// No ReadTimeout/WriteTimeout: the websocket endpoint holds
		// connections open indefinitely; the hub sets per-message deadlines.
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler:           httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("bookshop-api", m),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		hub.Close()
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}

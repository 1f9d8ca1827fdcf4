package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirinyoku/shootplan/internal/broadcast"
	"github.com/kirinyoku/shootplan/internal/config"
	"github.com/kirinyoku/shootplan/internal/mq"
	"github.com/kirinyoku/shootplan/internal/payments"
	"github.com/kirinyoku/shootplan/internal/postgres"
	redisx "github.com/kirinyoku/shootplan/internal/redis"
	"github.com/kirinyoku/shootplan/internal/repository"
	"github.com/kirinyoku/shootplan/internal/repository/memory"
	postgresrepo "github.com/kirinyoku/shootplan/internal/repository/postgres"
	redisrepo "github.com/kirinyoku/shootplan/internal/repository/redis"
	"github.com/kirinyoku/shootplan/internal/service"
	"github.com/kirinyoku/shootplan/internal/service/intake"
	"github.com/kirinyoku/shootplan/internal/service/schedule"
	httpgin "github.com/kirinyoku/shootplan/internal/transport/http/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	httpServer *http.Server
	bus        *broadcast.Bus
	watcher    *sessionWatcher
	closers    []func()
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	// Initialize dependencies
	store, err := a.openStore(context.Background())
	if err != nil {
		a.close()
		return nil, err
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = redisx.New(context.Background(), redisx.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
	}

	var (
		cache       *redisrepo.Cache
		limiter     *redisrepo.SlidingWindowLimiter
		idempotency *redisrepo.IdempotencyStore
	)
	if rdb != nil {
		cache = redisrepo.New(rdb)
		limiter = redisrepo.NewSlidingWindowLimiter(rdb, "inquiries", cfg.Intake.RateLimit, cfg.Intake.RateWindow)
		idempotency = redisrepo.NewIdempotencyStore(rdb, cfg.Intake.IdempotencyTTL)
	}

	// Cross-session broadcast
	var feed httpgin.SessionFeed
	if open := a.opener(rdb); open != nil {
		a.bus = broadcast.New(open, logger, broadcast.Config{})
		a.watcher = newSessionWatcher(broadcast.New(open, logger, broadcast.Config{}), cache, a.bus.SessionID(), logger)
		feed = a.watcher
	}

	checker := a.paymentsChecker()

	// Initialize services
	services := service.NewServices(store, cache, a.bus, limiter, checker, service.Config{
		Schedule: schedule.Config{
			Location:       cfg.Studio.Location,
			Policy:         schedule.ConflictPolicy(cfg.Studio.ConflictPolicy),
			CountCancelled: cfg.Studio.CountCancelled,
		},
		Intake: intake.Config{
			Location:      cfg.Studio.Location,
			SessionLength: cfg.Studio.SessionLength,
		},
	})

	// Initialize Gin router
	router := httpgin.NewRouter(services, httpgin.Deps{
		Idempotency: idempotency,
		Feed:        feed,
		Location:    cfg.Studio.Location,
	}, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

func (a *App) openStore(ctx context.Context) (repository.Store, error) {
	switch a.cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.New(ctx, postgres.Config{
			DSN:             a.cfg.Postgres.DSN(),
			ConnectAttempts: 5,
			RetryDelay:      2 * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)

		store := postgresrepo.NewStore(pool)
		if err := store.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
		return store, nil
	default:
		a.logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	}
}

// opener picks the broadcast substrate. A nil opener disables the bus.
func (a *App) opener(rdb *redis.Client) broadcast.Opener {
	cfg := a.cfg.Broadcast

	switch cfg.Driver {
	case config.BroadcastRedis:
		return redisx.Opener(rdb, cfg.Channel)
	case config.BroadcastAMQP:
		return mq.Opener(cfg.AMQPURL, cfg.AMQPExchange)
	case config.BroadcastMemory:
		return broadcast.NewHub(0).Opener()
	default:
		return nil
	}
}

func (a *App) paymentsChecker() payments.Checker {
	if a.cfg.Payments.Driver == config.PaymentsStripe {
		return payments.NewStripeChecker(a.cfg.Payments.StripeSecretKey)
	}
	return payments.FlagChecker{}
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer a.close()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("HTTP server listening", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// stream clients never finish on their own
		if a.watcher != nil {
			_ = a.watcher.Close()
		}
		return a.httpServer.Shutdown(ctx)
	})

	return g.Wait()
}

// close releases connections in reverse order of opening.
func (a *App) close() {
	if a.bus != nil {
		if err := a.bus.Close(); err != nil {
			a.logger.Warn("closing broadcast bus", "error", err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

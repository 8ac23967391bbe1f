// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/trip-logbook/backend/config"
	"github.com/trip-logbook/backend/internal/application/adapter"
	"github.com/trip-logbook/backend/internal/application/usecase/access"
	"github.com/trip-logbook/backend/internal/application/usecase/auth"
	"github.com/trip-logbook/backend/internal/application/usecase/car"
	"github.com/trip-logbook/backend/internal/application/usecase/expense"
	"github.com/trip-logbook/backend/internal/application/usecase/maintenance"
	"github.com/trip-logbook/backend/internal/application/usecase/notification"
	"github.com/trip-logbook/backend/internal/application/usecase/refuel"
	"github.com/trip-logbook/backend/internal/application/usecase/stats"
	"github.com/trip-logbook/backend/internal/application/usecase/tag"
	"github.com/trip-logbook/backend/internal/application/usecase/trip"
	"github.com/trip-logbook/backend/internal/application/usecase/user"
	"github.com/trip-logbook/backend/internal/domain/entity"
	"github.com/trip-logbook/backend/internal/domain/valueobject"
	"github.com/trip-logbook/backend/internal/infra/scheduler"
	"github.com/trip-logbook/backend/internal/infra/server/router"
	"github.com/trip-logbook/backend/internal/integration/adapters"
	"github.com/trip-logbook/backend/internal/integration/email"
	"github.com/trip-logbook/backend/internal/integration/email/templates"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/controller"
	"github.com/trip-logbook/backend/internal/integration/entrypoint/middleware"
	"github.com/trip-logbook/backend/internal/integration/persistence"
	"github.com/trip-logbook/backend/internal/integration/queue"
	"github.com/trip-logbook/backend/internal/integration/worker"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	Queue       adapter.TaskQueue
	Pool        *worker.Pool
	EmailWorker *email.Worker
	Scheduler   *scheduler.Scheduler

	wg sync.WaitGroup
}

// Options overrides infrastructure the injector would otherwise build from
// configuration. Zero values mean "build from config".
type Options struct {
	Clock       adapter.Clock
	RedisClient *redis.Client
	Queue       adapter.TaskQueue
	EmailSender adapter.EmailSender
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	clock := opts.Clock
	if clock == nil {
		clock = adapter.SystemClock{}
	}

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		slog.Warn("Unknown scheduler timezone, using UTC", "timezone", cfg.Scheduler.Timezone, "error", err)
		location = time.UTC
	}

	taskQueue := opts.Queue
	if taskQueue == nil {
		taskQueue, err = queue.New(queue.Config{
			Backend:      cfg.Queue.Backend,
			BufferSize:   cfg.Queue.BufferSize,
			RedisKey:     cfg.Queue.RedisKey,
			AMQPURL:      cfg.Queue.AMQPURL,
			AMQPExchange: cfg.Queue.AMQPExchange,
			AMQPQueue:    cfg.Queue.AMQPQueue,
		}, opts.RedisClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create task queue: %w", err)
		}
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	carRepo := persistence.NewCarRepository(db)
	tripRepo := persistence.NewTripRepository(db)
	refuelRepo := persistence.NewRefuelRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	tagRepo := persistence.NewTagRepository(db)
	statRepo := persistence.NewMonthlyStatRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	sender := opts.EmailSender
	if sender == nil {
		if cfg.Email.ResendAPIKey != "" {
			sender, err = email.NewResendClientWithBaseURL(
				cfg.Email.ResendAPIKey, cfg.Email.ResendBaseURL, cfg.Email.FromName, cfg.Email.FromEmail,
			)
			if err != nil {
				return nil, err
			}
		} else {
			slog.Warn("RESEND_API_KEY not set, emails will not leave the process")
			sender = email.NewMockEmailSender()
		}
	}
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailWorker := email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
		PollInterval: cfg.Email.PollInterval,
		BatchSize:    cfg.Email.BatchSize,
	})

	guard := access.NewCarGuard(carRepo)
	selector := tag.NewSelector(tagRepo)
	refresher := stats.NewRefresher(taskQueue)
	rate := valueobject.ExchangeRate{
		Base:  entity.Currency(cfg.Stats.BaseCurrency),
		Quote: entity.Currency(cfg.Stats.QuoteCurrency),
		Rate:  cfg.Stats.FXRate,
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, emailService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create stats use cases
	recomputeMonthUseCase := stats.NewRecomputeMonthUseCase(carRepo, tripRepo, refuelRepo, statRepo, clock)
	recomputeAllUseCase := stats.NewRecomputeAllUseCase(carRepo, taskQueue, clock, location)
	weeklySummariesUseCase := notification.NewSendWeeklySummariesUseCase(userRepo, tripRepo, refuelRepo, emailService, clock)
	cleanupUseCase := maintenance.NewCleanupUseCase(tokenService, emailQueueRepo, clock)

	// Create controllers
	healthChecks := []controller.HealthCheck{{
		Name: "database",
		Check: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if opts.RedisClient != nil {
		healthChecks = append(healthChecks, controller.HealthCheck{
			Name: "redis",
			Check: func(ctx context.Context) error {
				return opts.RedisClient.Ping(ctx).Err()
			},
		})
	}
	healthController := controller.NewHealthController(healthChecks...)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		user.NewGetProfileUseCase(userRepo),
		user.NewUpdateProfileUseCase(userRepo, clock),
		user.NewAssignRolesUseCase(userRepo),
	)

	carController := controller.NewCarController(
		car.NewCreateCarUseCase(carRepo, selector, clock),
		car.NewGetCarUseCase(guard),
		car.NewListCarsUseCase(carRepo),
		car.NewUpdateCarUseCase(carRepo, guard, selector, clock),
		car.NewDeleteCarUseCase(carRepo, guard),
	)

	tripController := controller.NewTripController(
		trip.NewCreateTripUseCase(tripRepo, guard, selector, refresher),
		trip.NewGetTripUseCase(tripRepo, guard),
		trip.NewListTripsUseCase(tripRepo),
		trip.NewListCarTripsUseCase(tripRepo, guard),
		trip.NewUpdateTripUseCase(tripRepo, guard, selector, refresher),
		trip.NewDeleteTripUseCase(tripRepo, guard, refresher),
	)

	refuelController := controller.NewRefuelController(
		refuel.NewCreateRefuelUseCase(refuelRepo, userRepo, guard, refresher),
		refuel.NewGetRefuelUseCase(refuelRepo, guard),
		refuel.NewListRefuelsUseCase(refuelRepo),
		refuel.NewUpdateRefuelUseCase(refuelRepo, guard, refresher),
		refuel.NewDeleteRefuelUseCase(refuelRepo, guard, refresher),
	)

	expenseController := controller.NewExpenseController(
		expense.NewCreateExpenseUseCase(expenseRepo, tripRepo, guard),
		expense.NewGetExpenseUseCase(expenseRepo),
		expense.NewListExpensesUseCase(expenseRepo),
		expense.NewUpdateExpenseUseCase(expenseRepo, tripRepo, guard),
		expense.NewDeleteExpenseUseCase(expenseRepo),
	)

	tagController := controller.NewTagController(
		tag.NewCreateTagUseCase(tagRepo),
		tag.NewListTagsUseCase(tagRepo),
		tag.NewUpdateTagUseCase(tagRepo),
		tag.NewDeleteTagUseCase(tagRepo),
	)

	statsController := controller.NewStatsController(
		stats.NewGetCarStatsUseCase(guard, tripRepo, refuelRepo),
		stats.NewGetMonthlyReportUseCase(carRepo, tripRepo, refuelRepo, rate, clock),
		stats.NewListMonthlyStatsUseCase(guard, statRepo),
		stats.NewRequestRecomputeUseCase(guard, taskQueue),
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService, userRepo)

	r := router.NewRouter(
		healthController,
		authController,
		userController,
		carController,
		tripController,
		refuelController,
		expenseController,
		tagController,
		statsController,
		loginRateLimiter,
		authMiddleware,
	)

	pool := worker.NewPool(taskQueue, worker.NewRecomputeProcessor(recomputeMonthUseCase), worker.Config{
		Concurrency:   cfg.Worker.Concurrency,
		RatePerSecond: cfg.Worker.RatePerSecond,
		TaskTimeout:   cfg.Worker.TaskTimeout,
		MaxAttempts:   cfg.Worker.MaxAttempts,
	})

	jobScheduler, err := scheduler.New(clock, location,
		buildJobs(cfg.Scheduler, recomputeAllUseCase, weeklySummariesUseCase, cleanupUseCase, loginRateLimiter)...)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler configuration: %w", err)
	}

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		Queue:       taskQueue,
		Pool:        pool,
		EmailWorker: emailWorker,
		Scheduler:   jobScheduler,
	}, nil
}

func buildJobs(
	cfg config.SchedulerConfig,
	recomputeAll *stats.RecomputeAllUseCase,
	weeklySummaries *notification.SendWeeklySummariesUseCase,
	cleanup *maintenance.CleanupUseCase,
	loginRateLimiter *middleware.RateLimiter,
) []scheduler.Job {
	return []scheduler.Job{
		{
			Name: "recompute-current-month",
			Spec: cfg.RecomputeSpec,
			Run: func(ctx context.Context) error {
				_, err := recomputeAll.Execute(ctx, stats.RecomputeAllInput{})
				return err
			},
		},
		{
			Name: "weekly-summary",
			Spec: cfg.WeeklySummarySpec,
			Run: func(ctx context.Context) error {
				_, err := weeklySummaries.Execute(ctx, notification.SendWeeklySummariesInput{})
				return err
			},
		},
		{
			Name: "cleanup",
			Spec: cfg.CleanupSpec,
			Run: func(ctx context.Context) error {
				loginRateLimiter.Cleanup()
				_, err := cleanup.Execute(ctx, maintenance.CleanupInput{})
				return err
			},
		},
	}
}

// Start launches the enabled background components. They stop when ctx is
// cancelled; call Wait to block until they have.
func (i *Injector) Start(ctx context.Context) {
	if i.Config.Worker.Enabled {
		i.goRun(func() { i.Pool.Start(ctx) })
	} else {
		slog.Info("Recompute worker pool disabled")
	}

	if i.Config.Email.WorkerEnabled {
		i.goRun(func() { i.EmailWorker.Start(ctx) })
	} else {
		slog.Info("Email worker disabled")
	}

	if i.Config.Scheduler.Enabled {
		i.goRun(func() { i.Scheduler.Start(ctx) })
	} else {
		slog.Info("Scheduler disabled")
	}
}

func (i *Injector) goRun(fn func()) {
	i.wg.Add(1)
	go func() {
		defer i.wg.Done()
		fn()
	}()
}

// Wait blocks until every component launched by Start has returned.
func (i *Injector) Wait() {
	i.wg.Wait()
}

// Close releases the task queue.
func (i *Injector) Close() error {
	return i.Queue.Close()
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/ohmfruit/fruitstore-service/config"
	"github.com/ohmfruit/fruitstore-service/internal/auth"
	"github.com/ohmfruit/fruitstore-service/internal/controller"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/cache/redis"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/message-queue/kafka"
	"github.com/ohmfruit/fruitstore-service/internal/infrastructure/tracing"
	"github.com/ohmfruit/fruitstore-service/internal/middleware"
	"github.com/ohmfruit/fruitstore-service/internal/repository"
	"github.com/ohmfruit/fruitstore-service/internal/service"
	"github.com/ohmfruit/fruitstore-service/pkg/response"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serviceName          = "fruitstore-service"
	cleanupInterval      = time.Minute
	maxRequestBody       = "60M"
	shutdownGracePeriod  = 10 * time.Second
	indexCreationTimeout = 30 * time.Second
)

type App struct {
	DB        *mongo.Database
	Config    *config.Config
	Storage   service.ImageStorage
	Cache     redis.Cache
	Publisher kafka.Publisher
	Server    *echo.Echo

	scheduler     gocron.Scheduler
	traceProvider *sdktrace.TracerProvider
}

// ConfigureLogger installs the global zerolog logger: human readable in
// development, JSON everywhere else.
func ConfigureLogger(conf *config.Config) {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if conf.Environment == "development" {
		logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Logger = logger
	zerolog.DefaultContextLogger = &log.Logger
}

// Setup builds the HTTP server and the background jobs without starting them.
func (app *App) Setup(ctx context.Context) (err error) {
	e := echo.New()
	e.HideBanner = true

	app.traceProvider, err = tracing.InitTracing(app.Config.TracingConfig.CollectorHost, serviceName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize tracing")
	}

	if app.traceProvider != nil {
		tracer := app.traceProvider.Tracer(serviceName)
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				c.SetRequest(c.Request().WithContext(ctx))

				return next(c)
			}
		})
	}

	// Used empty string so that metrics are not prefixed with the service name making it easier to aggregate across services
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(echomiddleware.Recover())
	e.Use(middleware.Logger)
	e.Use(echomiddleware.BodyLimit(maxRequestBody))
	if len(app.Config.CORSAllowedOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: app.Config.CORSAllowedOrigins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}

	g := e.Group("/api/v1")
	g.Use(middleware.AccessLog())

	productRepo := repository.CreateProductRepository(app.DB)
	categoryRepo := repository.CreateCategoryRepository(app.DB)
	pendingRepo := repository.CreatePendingDeletionRepository(app.DB)

	indexCtx, cancel := context.WithTimeout(ctx, indexCreationTimeout)
	defer cancel()
	if err = productRepo.EnsureIndexes(indexCtx); err != nil {
		return err
	}
	if err = categoryRepo.EnsureIndexes(indexCtx); err != nil {
		return err
	}

	authSvc := auth.CreateAuthService(app.Config.AuthConfig)
	isAdmin := middleware.RequireAdmin(authSvc)

	cleanupSvc := service.CreateImageCleanupService(app.Storage, pendingRepo)
	productSvc := service.CreateProductService(productRepo, categoryRepo, app.Storage, cleanupSvc, app.Publisher, app.Cache)
	categorySvc := service.CreateCategoryService(categoryRepo, app.Publisher, app.Cache)

	controller.CreateAuthController(g, authSvc)
	controller.CreateProductController(g, productSvc, isAdmin)
	controller.CreateCategoryController(g, categorySvc, isAdmin)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	app.scheduler, err = gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = app.scheduler.NewJob(
		gocron.DurationJob(
			cleanupInterval,
		),
		gocron.NewTask(
			func() {
				ctx := log.Logger.With().Str("job", "image-cleanup").Logger().WithContext(context.Background())
				if err := cleanupSvc.RetryPendingDeletions(ctx); err != nil {
					log.Ctx(ctx).Error().Err(err).Str("component", "RetryPendingDeletions").Msg("")
				}
			},
		),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	app.Server = e
	return nil
}

// Start serves the API and metrics until StopServer is called.
func (app *App) Start() {
	go func() {
		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	app.scheduler.Start()

	if err := app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()

	var errs []error
	if app.scheduler != nil {
		errs = append(errs, app.scheduler.Shutdown())
	}
	if app.Server != nil {
		errs = append(errs, app.Server.Shutdown(ctx))
	}
	if app.traceProvider != nil {
		errs = append(errs, app.traceProvider.Shutdown(ctx))
	}

	return errors.Join(errs...)
}

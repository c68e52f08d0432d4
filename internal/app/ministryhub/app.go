// Package ministryhub assembles and runs the API server process: storage,
// cache, queue channel, payment gateway client and the HTTP router.
package ministryhub

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/natiberk/ministry-hub/internal/cache"
	"github.com/natiberk/ministry-hub/internal/chapa"
	"github.com/natiberk/ministry-hub/internal/config"
	"github.com/natiberk/ministry-hub/internal/lib/jwt"
	"github.com/natiberk/ministry-hub/internal/lib/sl"
	"github.com/natiberk/ministry-hub/internal/migrations"
	"github.com/natiberk/ministry-hub/internal/rabbitmq"
	authservice "github.com/natiberk/ministry-hub/internal/services/auth"
	eventservice "github.com/natiberk/ministry-hub/internal/services/event"
	materialservice "github.com/natiberk/ministry-hub/internal/services/material"
	newsletterservice "github.com/natiberk/ministry-hub/internal/services/newsletter"
	receiptservice "github.com/natiberk/ministry-hub/internal/services/receipt"
	registrationservice "github.com/natiberk/ministry-hub/internal/services/registration"
	userservice "github.com/natiberk/ministry-hub/internal/services/user"
	"github.com/natiberk/ministry-hub/internal/storage/repository"
)

// App is the assembled API server.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	cfg      *config.Config
	db       *repository.Storage
	amqpConn *amqp.Connection

	jwtMaker            jwt.Maker
	authService         *authservice.AuthService
	eventService        *eventservice.EventService
	registrationService *registrationservice.RegistrationService
	materialService     *materialservice.MaterialService
	newsletterService   *newsletterservice.NewsletterService
	userService         *userservice.UserService
	receiptGenerator    *receiptservice.Generator
}

// New builds the App: opens the storage, runs migrations, connects the
// cache and the queue broker, and wires every service and route.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		// The cache is an optimization; the server runs without it.
		logger.Warn("redis unavailable, continuing without cache", sl.Err(err))
		redisCache = nil
	}

	amqpConn, err := rabbitmq.Connect(cfg.AddressRabbit, cfg.Retries, cfg.RetryDelay)
	if err != nil {
		return nil, err
	}
	amqpChannel, err := rabbitmq.SetupChannel(amqpConn, rabbitmq.GetNewsletterQueues())
	if err != nil {
		return nil, err
	}

	gateway := chapa.NewClient(cfg.Chapa.APIURL, cfg.Chapa.SecretKey)
	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.CookieTTL)

	app := &App{
		logger:   logger,
		cfg:      cfg,
		db:       db,
		amqpConn: amqpConn,

		jwtMaker:            jwtMaker,
		authService:         authservice.NewAuthService(db, jwtMaker),
		eventService:        eventservice.NewEventService(db, redisCache, logger),
		registrationService: registrationservice.NewRegistrationService(db, gateway, cfg.Chapa, logger),
		materialService:     materialservice.NewMaterialService(db, logger),
		newsletterService:   newsletterservice.NewNewsletterService(db, &newsletterservice.AMQPPublisher{Ch: amqpChannel}, logger),
		userService:         userservice.NewUserService(db, logger),
		receiptGenerator:    receiptservice.NewGenerator(cfg.OrganizationName),
	}

	router := chi.NewRouter()
	app.registerRoutes(router, logger)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.amqpConn.Close(); cerr != nil {
			a.logger.Warn("failed to close queue connection", sl.Err(cerr))
		}
		if cerr := a.db.DB.Close(); cerr != nil {
			a.logger.Warn("failed to close storage", sl.Err(cerr))
		}
		return err
	}
}

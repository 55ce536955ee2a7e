package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	models "github.com/skyfarehq/skyfare/internal"
	"github.com/skyfarehq/skyfare/internal/api"
	"github.com/skyfarehq/skyfare/internal/cache"
	"github.com/skyfarehq/skyfare/internal/kafka"
	"github.com/skyfarehq/skyfare/internal/ports"
	"github.com/skyfarehq/skyfare/internal/repository"
	"github.com/skyfarehq/skyfare/internal/service"
	"github.com/skyfarehq/skyfare/pkg/config"
	"github.com/skyfarehq/skyfare/pkg/health"
	"go.uber.org/zap"
)

type App struct {
	config   *config.Config
	server   *http.Server
	db       *pgxpool.Pool
	cache    *cache.RedisCache
	producer *kafka.Producer
	log      *zap.Logger
}

func NewApp(cfg *config.Config, log *zap.Logger) *App {
	return &App{
		config: cfg,
		log:    log,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	a.cache = cache.NewRedisCache(
		a.config.Redis.Addr,
		a.config.Redis.Password,
		a.config.Redis.DB,
		a.config.Redis.CacheTTL,
	)
	a.producer = kafka.NewProducer(a.config.Kafka.Brokers)

	if err := a.setupServer(); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	poolCfg, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	return nil
}

func (a *App) setupServer() error {
	services := a.setupServices()
	router := a.setupRouter(services)

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      router,
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	return nil
}

type Services struct {
	AuthService    ports.AuthService
	BookingService ports.BookingService
	FlightService  ports.FlightService
	QueryService   ports.QueryService
}

func (a *App) setupServices() Services {
	bookingRepo := repository.NewBookingRepository(a.db)
	flightRepo := repository.NewFlightRepository(a.db)
	userRepo := repository.NewUserRepository(a.db)

	return Services{
		AuthService: service.NewAuthService(
			userRepo,
			a.config.Auth.JWTSecret,
			a.config.Auth.TokenTTL,
			a.log,
		),
		BookingService: service.NewBookingService(
			bookingRepo,
			flightRepo,
			a.log,
			service.WithEventProducer(a.producer, a.config.Kafka.BookingsTopic),
		),
		FlightService: service.NewFlightService(flightRepo, a.log),
		QueryService:  service.NewQueryService(bookingRepo, flightRepo, a.cache, a.log),
	}
}

func (a *App) setupRouter(services Services) http.Handler {
	router := mux.NewRouter()
	router.Use(api.RequestLogger(a.log))
	router.Use(api.Metrics())

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := router.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/health", health.HealthGet(a.db)).Methods(http.MethodGet)

	v1.HandleFunc("/auth/register", api.RegisterHandler(services.AuthService, models.RoleUser)).Methods(http.MethodPost)
	v1.HandleFunc("/auth/login", api.LoginHandler(services.AuthService)).Methods(http.MethodPost)

	v1.HandleFunc("/flights", api.ListFlightsHandler(services.QueryService, true)).Methods(http.MethodGet)
	v1.HandleFunc("/flights/{id}", api.GetFlightHandler(services.FlightService)).Methods(http.MethodGet)

	secured := v1.NewRoute().Subrouter()
	secured.Use(api.Authenticate(services.AuthService))
	secured.HandleFunc("/bookings", api.CreateBookingHandler(services.BookingService)).Methods(http.MethodPost)
	secured.HandleFunc("/recommendations", api.RecommendationsHandler(services.QueryService)).Methods(http.MethodGet)

	admin := secured.NewRoute().Subrouter()
	admin.Use(api.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/bookings/{id}", api.CancelBookingHandler(services.BookingService)).Methods(http.MethodDelete)
	admin.HandleFunc("/flights", api.CreateFlightHandler(services.FlightService)).Methods(http.MethodPost)
	admin.HandleFunc("/flights/{id}", api.UpdateFlightHandler(services.FlightService)).Methods(http.MethodPut)
	admin.HandleFunc("/flights/{id}", api.DeleteFlightHandler(services.BookingService)).Methods(http.MethodDelete)
	admin.HandleFunc("/admin/flights", api.ListFlightsHandler(services.QueryService, false)).Methods(http.MethodGet)
	admin.HandleFunc("/admin/bookings", api.ListBookingsHandler(services.QueryService)).Methods(http.MethodGet)
	admin.HandleFunc("/admin/register", api.RegisterHandler(services.AuthService, models.RoleAdmin)).Methods(http.MethodPost)

	return router
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		a.log.Info("starting server", zap.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		a.log.Info("starting graceful shutdown", zap.String("signal", sig.String()))
		return a.Shutdown(ctx)
	case <-ctx.Done():
		return a.Shutdown(ctx)
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Warn("producer close failed", zap.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close failed", zap.Error(err))
		}
	}
	if a.db != nil {
		a.db.Close()
	}

	return nil
}

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	defer log.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	app := NewApp(cfg, log)
	if err := app.Initialize(ctx); err != nil {
		log.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Run(ctx); err != nil {
		log.Fatal("application error", zap.Error(err))
	}
}

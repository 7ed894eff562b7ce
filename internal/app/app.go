package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/immerse/sponsor-tracker/internal/config"
	"github.com/immerse/sponsor-tracker/internal/dashboard"
	"github.com/immerse/sponsor-tracker/internal/handler"
	"github.com/immerse/sponsor-tracker/internal/middleware"
	"github.com/immerse/sponsor-tracker/internal/repository"
	"github.com/immerse/sponsor-tracker/internal/repository/memory"
	"github.com/immerse/sponsor-tracker/internal/repository/mongodb"
	"github.com/immerse/sponsor-tracker/internal/repository/postgres"
	"github.com/immerse/sponsor-tracker/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config  *config.Config
	store   repository.Store
	server  *http.Server
	router  http.Handler
	logger  *slog.Logger
	clock   clockwork.Clock
	metrics *prometheus.Registry
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := &App{
		config:  cfg,
		logger:  logger,
		clock:   clockwork.NewRealClock(),
		metrics: prometheus.NewRegistry(),
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Открываем хранилище (MongoDB подключается лениво, при первом запросе)
	if err := a.openStore(ctx); err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}

	// Настраиваем HTTP сервер и роутинг
	if err := a.setupServer(); err != nil {
		return fmt.Errorf("failed to setup server: %w", err)
	}

	a.logger.Info("Application initialized successfully", "store", a.config.Store.Driver)
	return nil
}

// openStore создает хранилище согласно STORE_DRIVER
func (a *App) openStore(ctx context.Context) error {
	switch a.config.Store.Driver {
	case config.DriverMongo:
		m := a.config.Mongo
		a.store = mongodb.NewStore(m.URI, m.Database, m.Collection, m.ConnectTimeout, a.clock)
	case config.DriverPostgres:
		db := a.config.Database
		store, err := postgres.NewStore(ctx, db.DSN(), db.MaxConns, db.MinConns, a.clock)
		if err != nil {
			return err
		}
		a.store = store
		a.logger.Info("Connected to database")
	case config.DriverMemory:
		a.store = memory.New(a.clock)
	default:
		return fmt.Errorf("unknown store driver %q", a.config.Store.Driver)
	}
	return nil
}

// dashboardAPIURL возвращает адрес API для дашборда
func (a *App) dashboardAPIURL() string {
	if a.config.Dashboard.APIURL != "" {
		return a.config.Dashboard.APIURL
	}

	host := a.config.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, a.config.Server.Port)
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() error {
	// Инициализируем слой сервисов (бизнес-логика)
	sponsorService := service.NewSponsorService(a.store.Sponsors())
	statsService := service.NewStatsService(a.store.Sponsors())

	// Инициализируем HTTP обработчики
	sponsorHandler := handler.NewSponsorHandler(sponsorService, a.logger)
	statsHandler := handler.NewStatsHandler(statsService, a.logger)

	// Дашборд ходит в API по HTTP, как браузерный клиент
	formatter, err := dashboard.NewFormatter(a.config.Dashboard.Locale, a.config.Dashboard.CurrencySymbol)
	if err != nil {
		return err
	}
	apiClient := dashboard.NewClient(a.dashboardAPIURL(), &http.Client{Timeout: 10 * time.Second})
	dashboardHandler, err := dashboard.NewHandler(apiClient, formatter, a.config.Dashboard.Title, a.logger)
	if err != nil {
		return fmt.Errorf("failed to parse dashboard templates: %w", err)
	}

	a.metrics.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(a.metrics)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(metrics.Handler)
	r.Use(middleware.CORS(a.config.Server.CORSOrigins))

	// Health check для мониторинга
	r.Get("/health", a.health)
	r.Handle("/metrics", promhttp.HandlerFor(a.metrics, promhttp.HandlerOpts{}))

	// Эндпоинты спонсоров
	r.Route("/sponsors", func(r chi.Router) {
		r.Post("/", sponsorHandler.CreateSponsor)
		r.Get("/", sponsorHandler.ListSponsors)
		r.Get("/stats", statsHandler.GetStats)
		r.Delete("/{id}", sponsorHandler.DeleteSponsor)
	})
	r.Get("/teams", handler.GetTeams)

	// Старые пути, которыми пользовался первый фронтенд
	r.Route("/api", func(r chi.Router) {
		r.Post("/add-sponsor", sponsorHandler.CreateSponsor)
		r.Get("/get-sponsors", sponsorHandler.ListSponsors)
		r.Delete("/delete/{id}", sponsorHandler.DeleteSponsor)
	})

	// Веб-дашборд
	dashboardHandler.Routes(r)

	a.router = r

	// Создаем HTTP сервер с настройками таймаутов
	addr := net.JoinHostPort(a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr, "dashboard_api", a.dashboardAPIURL())
	return nil
}

// health отвечает 200 если хранилище доступно и 503 иначе
func (a *App) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, body := http.StatusOK, `{"status":"ok"}`
	if err := a.store.Ping(ctx); err != nil {
		a.logger.Error("Health check failed", "error", err)
		status, body = http.StatusServiceUnavailable, `{"status":"unavailable"}`
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		a.logger.Error("Failed to write health check response", "error", err)
	}
}

// Handler возвращает корневой HTTP обработчик (доступен после Initialize)
func (a *App) Handler() http.Handler {
	return a.router
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	// Закрываем подключение к хранилищу
	if a.store != nil {
		if err := a.store.Close(ctx); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}

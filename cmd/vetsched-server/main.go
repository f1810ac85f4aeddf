package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"

	"vetsched/backend/internal/config"
	"vetsched/backend/internal/notify"
	"vetsched/backend/internal/service/appointments"
	"vetsched/backend/internal/store/postgres"
	"vetsched/backend/internal/transport/rest"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With(
		slog.String("service", "vetsched-server"),
	)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)})).With(
		slog.String("service", "vetsched-server"),
	)
	slog.SetDefault(log)

	addr := fmt.Sprintf("%s:%d", cfg.HTTPHost, cfg.HTTPPort)
	log.Info("starting", slog.String("http_addr", addr), slog.String("log_level", cfg.LogLevel))

	log.Info("connecting to database", databaseLogArgs(cfg.DatabaseURL)...)
	db, err := postgres.Open(cfg.DatabaseURL, postgres.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		args := append([]any{slog.Any("err", err)}, databaseLogArgs(cfg.DatabaseURL)...)
		log.Error("database connection failed", args...)
		os.Exit(1)
	}
	defer func() {
		if err := postgres.Close(db); err != nil {
			log.Warn("database close failed", slog.Any("err", err))
		}
	}()

	repo := postgres.NewAppointmentRepo(db)
	resources := postgres.NewResourceRepo(db)
	svc := appointments.NewService(repo, resources, notify.NewLogDispatcher(log))

	var rl *rest.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rl = rest.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := rest.NewRouter(rest.NewHandler(svc, log), rl)

	handler := handlers.RecoveryHandler(handlers.RecoveryLogger(&recoveryLogger{log: log}))(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(handler)
	handler = http.TimeoutHandler(handler, cfg.RequestTimeout, `{"success":false,"error":"request timed out"}`)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	log.Info("http server started", slog.String("http_addr", addr))

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdown(log, server, cfg.ShutdownTimeout)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped with error", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func shutdown(log *slog.Logger, s *http.Server, timeout time.Duration) {
	log.Info("shutting down http server", slog.Duration("timeout", timeout))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Warn("http graceful shutdown timed out; forcing close", slog.Any("err", err))
		_ = s.Close()
		return
	}
	log.Info("http server stopped")
}

type recoveryLogger struct {
	log *slog.Logger
}

func (l *recoveryLogger) Println(v ...any) {
	l.log.Error("panic recovered", slog.String("detail", fmt.Sprintln(v...)))
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func databaseLogArgs(databaseURL string) []any {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return []any{slog.String("db_url", "invalid")}
	}
	name := strings.TrimPrefix(u.Path, "/")
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "default"
	}
	if host == "" {
		host = "unknown"
	}
	if name == "" {
		name = "unknown"
	}
	return []any{
		slog.String("db_host", host),
		slog.String("db_port", port),
		slog.String("db_name", name),
	}
}

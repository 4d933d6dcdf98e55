package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/url"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/felicityfest/felicity-backend/internal/application/admission"
	"github.com/felicityfest/felicity-backend/internal/application/event"
	"github.com/felicityfest/felicity-backend/internal/application/forum"
	"github.com/felicityfest/felicity-backend/internal/config"
	"github.com/felicityfest/felicity-backend/internal/infrastructure/postgres"
	rabbitpub "github.com/felicityfest/felicity-backend/internal/infrastructure/rabbitmq"
	rediscache "github.com/felicityfest/felicity-backend/internal/infrastructure/redis"
	"github.com/felicityfest/felicity-backend/internal/logger"
	"github.com/felicityfest/felicity-backend/internal/realtime"
	"github.com/felicityfest/felicity-backend/internal/security"
	"github.com/felicityfest/felicity-backend/internal/transport/http/handlers"
	authmw "github.com/felicityfest/felicity-backend/internal/transport/http/middleware"
	"github.com/felicityfest/felicity-backend/internal/transport/http/router"
	zlog "github.com/rs/zerolog/log"
)

// sysClock feeds wall-clock time to every service that derives status or
// checks deadlines.
type sysClock struct{}

func (sysClock) Now() time.Time { return time.Now().UTC() }

type App struct {
	Config *config.Config
	Server *http.Server
	DB     *sql.DB

	Hub       *realtime.Hub
	Publisher *rabbitpub.Publisher
}

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	u, _ := url.Parse(cfg.DatabaseURL)
	zlog.Info().
		Str("db_user", u.User.Username()).
		Str("db_host", u.Host).
		Str("db_db", u.Path).
		Msg("db config loaded")

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal().Err(err).Msg("db open failed")
	}
	defer db.Close()

	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			zlog.Fatal().Err(err).Msg("db ping failed")
		}
	}

	app := NewApp(cfg, db)
	defer func() {
		if app.Publisher != nil {
			_ = app.Publisher.Close()
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("server crashed")
		}
	}()

	<-ctx.Done()
	zlog.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Err(err).Msg("server shutdown failed")
	}
	app.Hub.Shutdown()
}

func NewApp(cfg *config.Config, db *sql.DB) *App {
	// 1) Infrastructure
	eventRepo := postgres.NewEventRepo(db)
	regRepo := postgres.NewRegistrationRepo(db)
	forumRepo := postgres.NewForumRepo(db)
	profileRepo := postgres.NewProfileRepo(db)

	cache := rediscache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	var rabbit *rabbitpub.Publisher
	var pub event.AnnouncePublisher = event.NoopPublisher{}
	if cfg.RabbitURL != "" {
		p, err := rabbitpub.NewPublisher(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			zlog.Fatal().Err(err).Msg("rabbit publisher init failed")
		}
		rabbit = p
		pub = p
		zlog.Info().Str("exchange", cfg.RabbitExchange).Msg("rabbit publisher ready")
	} else {
		zlog.Warn().Msg("RABBIT_URL empty: publish announces will not be delivered")
	}

	hub := realtime.NewHub()

	// 2) Application
	clock := sysClock{}
	eventSvc := event.New(eventRepo, regRepo, clock, pub, cache, cfg.CacheTTLDetails)
	admissionSvc := admission.New(eventRepo, regRepo, profileRepo, cache, clock)
	forumSvc := forum.New(eventRepo, forumRepo, regRepo, profileRepo, realtime.ForumFanout{Hub: hub}, clock)

	// 3) Transport
	verifier := security.NewHS256Verifier(cfg.JWTSecret, cfg.JWTIssuer)
	auth := authmw.NewAuth(verifier)
	ws := realtime.NewHandler(hub, verifier, forumSvc)

	httpHandler := router.New(
		handlers.NewEventsHandler(eventSvc, clock),
		handlers.NewAdmissionsHandler(admissionSvc),
		handlers.NewForumHandler(forumSvc, clock),
		handlers.NewHealthHandler(),
		ws,
		auth,
		cfg,
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpHandler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &App{
		Config:    cfg,
		Server:    srv,
		DB:        db,
		Hub:       hub,
		Publisher: rabbit,
	}
}

// @title           Shaggy Mission web
// @version         1.0
// @description     Server-rendered front end of the Shaggy Mission pet adoption platform.
// @BasePath        /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	_ "github.com/shaggymission/adoption-web/docs"
	"github.com/shaggymission/adoption-web/internal/api"
	"github.com/shaggymission/adoption-web/internal/api/middleware"
	"github.com/shaggymission/adoption-web/internal/api/view"
	"github.com/shaggymission/adoption-web/internal/core/ports"
	"github.com/shaggymission/adoption-web/internal/core/service"
	"github.com/shaggymission/adoption-web/internal/infrastructure/db/memory"
	mongodb "github.com/shaggymission/adoption-web/internal/infrastructure/db/mongo"
	redisdb "github.com/shaggymission/adoption-web/internal/infrastructure/db/redis"
	"github.com/shaggymission/adoption-web/internal/infrastructure/gateway"
	"github.com/shaggymission/adoption-web/internal/infrastructure/queue"
	"github.com/shaggymission/adoption-web/internal/pkg/config"
	"github.com/shaggymission/adoption-web/pkg/logger"
)

const (
	serviceName     = "adoption-web"
	shutdownTimeout = 15 * time.Second
	sweepInterval   = time.Minute
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	g, gctx := errgroup.WithContext(ctx)

	// --- Session storage and submit guards ---
	var (
		store ports.Storage
		guard ports.SubmitGuard
		rdb   *goredis.Client
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		store = redisdb.NewStorage(rdb, cfg.Session.TTL)
		guard = redisdb.NewSubmitGuard(rdb, 0)
	default:
		mem := memory.NewStorage(cfg.Session.TTL)
		store = mem
		guard = memory.NewSubmitGuard(0)
		g.Go(func() error {
			mem.Run(gctx, sweepInterval)
			return nil
		})
	}

	// --- Adoption decision sink ---
	var (
		sink ports.DecisionSubmitter = gateway.NewNoopDecisionSubmitter(logger.Named("decisions"))
		mdb  *mongo.Database
	)
	if cfg.Decisions.Sink == config.DecisionSinkMongo {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  serviceName,
		})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		repo := mongodb.NewDecisionRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
		sink, mdb = repo, db
	}
	dispatcher := queue.NewDispatcher(cfg.Decisions.Workers, cfg.Decisions.QueueSize, sink, log)
	g.Go(func() error { return dispatcher.Run(gctx) })

	// --- Services ---
	gw := gateway.New(cfg.Gateway, logger.Named("gateway"))
	sessions := service.NewSessionManager(store, gw, log)

	renderer, err := view.New()
	if err != nil {
		return err
	}

	e := api.NewRouter(api.Dependencies{
		Log:      log,
		Renderer: renderer,
		Session: middleware.SessionConfig{
			Secret: cfg.Session.Secret,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.Secure,
		},
		Sessions:      sessions,
		Auth:          service.NewAuthService(gw, gw, guard, log),
		Dashboard:     service.NewDashboardService(gw, gw, gw, dispatcher, guard, log),
		Collaborators: service.NewCollaboratorService(gw, log),
		Mongo:         mdb,
		Redis:         rdb,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

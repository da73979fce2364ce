// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"taskdeck/internal/audit"
	audithandler "taskdeck/internal/audit/handler"
	"taskdeck/internal/audit/sink"
	"taskdeck/internal/auth"
	authhandler "taskdeck/internal/auth/handler"
	"taskdeck/internal/auth/store/revocation"
	jwttoken "taskdeck/internal/jwt_token"
	"taskdeck/internal/platform/config"
	"taskdeck/internal/platform/httpserver"
	"taskdeck/internal/platform/logger"
	"taskdeck/internal/platform/postgres"
	platformredis "taskdeck/internal/platform/redis"
	taskhandler "taskdeck/internal/task/handler"
	taskmetrics "taskdeck/internal/task/metrics"
	taskservice "taskdeck/internal/task/service"
	taskstore "taskdeck/internal/task/store"
	httptransport "taskdeck/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres unavailable", "error", err)
		os.Exit(1)
	}

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}

	// Stores: postgres when configured, in-memory otherwise.
	var (
		tasks    taskservice.Store
		auditLog audit.Store
		users    auth.UserStore
		orgs     auth.OrgStore
		trl      auth.RevocationList
	)
	if db != nil {
		tasks = taskstore.NewPostgres(db)
		auditLog = audit.NewPostgresStore(db)
		users = auth.NewPostgresUserStore(db)
		orgs = auth.NewPostgresOrgStore(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		tasks = taskstore.NewInMemory()
		auditLog = audit.NewInMemoryStore()
		users = auth.NewInMemoryUserStore()
		orgs = auth.NewInMemoryOrgStore()
	}
	if redisClient != nil {
		trl = revocation.NewRedisList(redisClient)
	} else {
		log.Warn("REDIS_URL not set, using in-memory revocation list")
		trl = revocation.NewInMemoryList()
	}

	kafkaSink, err := sink.NewKafka(cfg.KafkaBrokers, cfg.AuditTopic, log)
	if err != nil {
		log.Error("kafka unavailable", "error", err)
		os.Exit(1)
	}

	var recorderOpts []audit.Option
	if kafkaSink != nil {
		recorderOpts = append(recorderOpts, audit.WithSink(kafkaSink))
	}
	recorder := audit.NewRecorder(auditLog, log, recorderOpts...)

	tokenSvc := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer)
	authSvc := auth.NewService(users, tokenSvc, trl, log)
	taskSvc := taskservice.New(tasks, recorder, taskservice.WithMetrics(taskmetrics.New()))
	auditSvc := audit.NewService(recorder, auditLog)

	if cfg.Bootstrap {
		if err := auth.Bootstrap(ctx, orgs, users, log); err != nil {
			log.Error("bootstrap failed", "error", err)
			os.Exit(1)
		}
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:       log,
		JWTValidator: tokenSvc,
		Revocation:   trl,
		Auth:         authhandler.New(authSvc, log),
		Tasks:        taskhandler.New(taskSvc, log),
		AuditLog:     audithandler.New(auditSvc, log),
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting taskdeck", "addr", cfg.Addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if kafkaSink != nil {
			return kafkaSink.Close(shutdownCtx)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sesaco/internal/audit"
	authhandler "sesaco/internal/auth/handler"
	authservice "sesaco/internal/auth/service"
	inspectorstore "sesaco/internal/auth/store/inspector"
	sessionstore "sesaco/internal/auth/store/session"
	"sesaco/internal/catalog"
	cataloghandler "sesaco/internal/catalog/handler"
	companyhandler "sesaco/internal/company/handler"
	companyservice "sesaco/internal/company/service"
	companystore "sesaco/internal/company/store"
	httpapi "sesaco/internal/http"
	"sesaco/internal/jwttoken"
	"sesaco/internal/platform/config"
	"sesaco/internal/platform/httpserver"
	"sesaco/internal/platform/logger"
	"sesaco/internal/platform/metrics"
	"sesaco/internal/platform/postgres"
	"sesaco/internal/platform/redis"
	reporthandler "sesaco/internal/report/handler"
	reportservice "sesaco/internal/report/service"
	submissionhandler "sesaco/internal/submission/handler"
	submissionservice "sesaco/internal/submission/service"
	submissionstore "sesaco/internal/submission/store"
)

// main wires the dependency graph and keeps the server lifecycle small.
// Every backing service is optional: without Postgres, Redis, or Kafka the
// process runs fully in memory, which is how local development works.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()
	ctx := context.Background()

	cat, err := catalog.Load()
	if err != nil {
		log.Error("checklist load failed", "error", err)
		os.Exit(1)
	}

	db, err := postgres.Open(cfg.PostgresURL)
	if err != nil {
		log.Error("postgres init failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	redisClient, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var publisher audit.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.AuditTopic, log)
		if err != nil {
			log.Error("kafka init failed", "error", err)
			os.Exit(1)
		}
		defer kafka.Close(context.Background())
		publisher = kafka
	} else {
		log.Info("no kafka brokers configured, audit events stay in memory")
		publisher = audit.NewMemoryRecorder()
	}

	var inspectors authservice.InspectorStore = inspectorstore.NewInMemory()
	var companies companyservice.Store = companystore.NewInMemory()
	var submissions submissionservice.Store = submissionstore.NewInMemory()
	if db != nil {
		inspectors = inspectorstore.NewPostgres(db)
		companies = companystore.NewPostgres(db)
		submissions = submissionstore.NewPostgres(db)
	}
	var sessions authservice.SessionStore = sessionstore.NewInMemory()
	if redisClient != nil {
		sessions = sessionstore.NewRedis(redisClient.Client)
	}

	jwt := jwttoken.NewService(cfg.JWTSigningKey, "sesaco", "sesaco-api")

	auth := authservice.New(inspectors, sessions, jwt, cfg.TokenTTL,
		authservice.WithLogger(log),
		authservice.WithMetrics(m),
		authservice.WithAuditPublisher(publisher),
	)
	admin := cfg.BootstrapAdmin
	if err := auth.Bootstrap(ctx, admin.Cedula, admin.Password, admin.Name); err != nil {
		log.Error("bootstrap admin failed", "error", err)
		os.Exit(1)
	}

	company := companyservice.New(companies,
		companyservice.WithLogger(log),
		companyservice.WithMetrics(m),
		companyservice.WithAuditPublisher(publisher),
	)
	submission := submissionservice.New(submissions, companies, cat,
		submissionservice.WithLogger(log),
		submissionservice.WithMetrics(m),
		submissionservice.WithAuditPublisher(publisher),
	)
	report := reportservice.New(companies, submissions,
		reportservice.WithLogger(log),
		reportservice.WithMetrics(m),
		reportservice.WithAuditPublisher(publisher),
	)

	authH := authhandler.New(auth, log)
	router := httpapi.NewRouter(httpapi.Deps{
		Logger:    log,
		Metrics:   m,
		Validator: jwt,
		Sessions:  auth,
		Public: []httpapi.Registrar{
			httpapi.RegistrarFunc(authH.RegisterPublic),
		},
		Protected: []httpapi.Registrar{
			authH,
			cataloghandler.New(cat),
			companyhandler.New(company, log),
			submissionhandler.New(submission, log),
			reporthandler.New(report, inspectors, cat, log),
		},
		Health: func() map[string]string {
			status := map[string]string{}
			if db != nil {
				status["postgres"] = "ok"
				if err := db.Ping(); err != nil {
					status["postgres"] = "unreachable"
				}
			}
			if redisClient != nil {
				status["redis"] = "ok"
				if err := redisClient.Health(context.Background()); err != nil {
					status["redis"] = "unreachable"
				}
			}
			return status
		},
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting sesaco", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

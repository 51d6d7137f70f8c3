package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"user-directory-service/config"
	"user-directory-service/internal/application/ports"
	"user-directory-service/internal/application/services"
	"user-directory-service/internal/infrastructure/cache"
	"user-directory-service/internal/infrastructure/db/postgres"
	"user-directory-service/internal/infrastructure/db/postgres/user"
	"user-directory-service/internal/infrastructure/jwt"
	"user-directory-service/internal/infrastructure/metrics"
	"user-directory-service/internal/infrastructure/mq"
	"user-directory-service/internal/interface/api/ops"
	"user-directory-service/internal/interface/msg"
	"user-directory-service/pkg/rmqrpc"
)

type App struct {
	logger    *zap.Logger
	cfg       config.Config
	db        *pgxpool.Pool
	cache     *cache.SummaryCache
	httpSrv   *http.Server
	router    *gin.Engine
	mCounter  *prometheus.CounterVec
	mq        ports.RabbitMQ
	rpcServer ports.RPCServer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Fatal("error loading .env file", zap.Error(err))
	}
	cfg := config.Load()

	// metrics
	mCounter := metrics.NewCounter()

	// ops router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ops.RequestLog(logger, mCounter))
	ops.Register(r)

	// ops http server
	httpSrv := &http.Server{
		Addr:    ":" + cfg.App.OpsPort,
		Handler: r,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// summary cache (optional)
	var summaryCache *cache.SummaryCache
	if cfg.Redis.Addr != "" {
		summaryCache = cache.New(cfg.Redis, logger)
		if err = summaryCache.Ping(ctx); err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
	}

	// rabbitMQ event publisher
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}

	// rpc server for the message-pattern surface
	rpcServer := rmqrpc.New(cfg.MQ, logger)
	if err = rpcServer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ rpc server", zap.Error(err))
	}
	if err = rpcServer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ rpc server", zap.Error(err))
	}

	return &App{
		logger:    logger,
		cfg:       cfg,
		db:        dbPool,
		cache:     summaryCache,
		httpSrv:   httpSrv,
		router:    r,
		mCounter:  mCounter,
		mq:        rbMQ,
		rpcServer: rpcServer,
	}, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name+" ops server", zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.rpcServer.Worker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("ops server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

// InitHandlers wires repositories, services and the message dispatch.
func (a *App) InitHandlers() {
	// repos
	userRepo := user.NewRepository(a.db)

	// services
	var summaryCache ports.SummaryCache
	if a.cache != nil {
		summaryCache = a.cache
	}
	directory := services.NewDirectoryService(
		userRepo,
		summaryCache,
		a.mq,
		a.mCounter,
		a.cfg.App.OpenRegistration,
	)

	// message-pattern dispatch
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	handler := msg.NewHandler(directory, jwtService, a.logger)
	a.rpcServer.SetHandler(handler.Handle)
}

func (a *App) Logger() *zap.Logger { return a.logger }

// @title        Worklock API
// @version      1.0
// @description  QR-challenge attendance and escrow service backed by a smart-contract ledger.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/worklock/worklock/docs"
	"github.com/worklock/worklock/internal/api"
	"github.com/worklock/worklock/internal/core/ports"
	"github.com/worklock/worklock/internal/core/service"
	mongodb "github.com/worklock/worklock/internal/infrastructure/db/mongo"
	redisdb "github.com/worklock/worklock/internal/infrastructure/db/redis"
	"github.com/worklock/worklock/internal/infrastructure/ledger/memledger"
	"github.com/worklock/worklock/internal/infrastructure/ledger/rpcledger"
	"github.com/worklock/worklock/internal/infrastructure/queue"
	"github.com/worklock/worklock/internal/infrastructure/signer"
	"github.com/worklock/worklock/internal/pkg/config"
	"github.com/worklock/worklock/pkg/logger"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Ledger and signing ---
	var ledger ports.Ledger
	switch cfg.Ledger.Mode {
	case "rpc":
		ledger = rpcledger.New(cfg.Ledger.GatewayURL, cfg.Ledger.Timeout, log)
	default:
		ledger = memledger.New(cfg.Ledger.AttendanceContract, cfg.Ledger.EscrowContract, cfg.Ledger.TokenContract)
	}

	sgn, err := signer.NewLocal(cfg.Signer.Seed)
	if err != nil {
		log.Fatal().Err(err).Msg("signer initialisation failed")
	}

	serializer := queue.NewSerializer(0, log)
	serializer.Start(ctx)

	tx := service.NewTxAssembler(ledger, sgn, serializer, cfg.Ledger.Network, log)

	// --- Core services ---
	userRepo := mongodb.NewUserRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	commentService := service.NewCommentService(commentRepo, log)
	challengeService := service.NewChallengeService(redisdb.NewChallengeStore(rdb), cfg.Challenge.TTL, log)
	attendanceService := service.NewAttendanceService(tx, cfg.Ledger.AttendanceContract, redisdb.NewNonceGuard(rdb), log)
	escrowService := service.NewEscrowService(tx, cfg.Ledger.EscrowContract, cfg.Ledger.AttendanceContract, cfg.Ledger.TokenContract, log)

	// The rotor keeps the kiosk challenge fresh for the lifetime of the
	// process.
	rotor := service.NewChallengeRotor(challengeService, 0, nil, nil, log)
	if err := rotor.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("challenge rotor start failed")
	}

	// --- HTTP ---
	e := api.NewRouter(api.Dependencies{
		Mongo:      db,
		Redis:      rdb,
		JWTSecret:  cfg.JWTSecret,
		Auth:       authService,
		Challenges: challengeService,
		Attendance: attendanceService,
		Escrow:     escrowService,
		Comments:   commentService,
		Log:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("ledger_mode", cfg.Ledger.Mode).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

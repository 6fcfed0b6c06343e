package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/finance-ledger/internal/config"
	"github.com/iliyamo/finance-ledger/internal/database"
	"github.com/iliyamo/finance-ledger/internal/handler"
	"github.com/iliyamo/finance-ledger/internal/middleware"
	"github.com/iliyamo/finance-ledger/internal/queue"
	"github.com/iliyamo/finance-ledger/internal/repository"
	"github.com/iliyamo/finance-ledger/internal/router"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.Migrate(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrate: %v", err)
	}
	cancel()

	cacheCfg := config.LoadCacheConfig()
	var cache *middleware.ListCache
	if cacheCfg.Enabled {
		rdb := config.NewRedisClient()
		if rdb == nil {
			log.Printf("redis unavailable, transaction list cache disabled")
		}
		cache = middleware.NewListCache(rdb, cacheCfg)
	} else {
		cache = middleware.NewListCache(nil, cacheCfg)
	}

	users := repository.NewUserRepo(db)
	transactions := repository.NewTransactionRepo(db)

	authHandler := handler.NewAuthHandler(cfg, users, cache)
	txHandler := handler.NewTransactionHandler(cfg, transactions, cache)

	if cfg.QueueEnabled {
		go func() {
			if err := queue.StartAccountConsumer(); err != nil {
				log.Printf("account consumer stopped: %v", err)
			}
		}()
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, authHandler, txHandler, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// README: Entry point; loads config, wires services, starts the HTTP server and drains background work on shutdown.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"vamu/internal/ai"
	"vamu/internal/config"
	httptransport "vamu/internal/http"
	"vamu/internal/http/handlers"
	"vamu/internal/infra"
	"vamu/internal/maps"
	"vamu/internal/modules/analytics"
	"vamu/internal/modules/inspiration"
	"vamu/internal/modules/wishlist"
)

const (
	serviceName = "vamu-inspiration"
	version     = "1.0.0"
)

func main() {
	cfg, err := config.Load()
	infra.InitLogger(serviceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := maps.NewProvider(cfg.Places)
	if err != nil {
		log.Fatal().Err(err).Msg("places provider init")
	}
	inspirationSvc := inspiration.NewService(provider, inspiration.Options{
		Defaults: inspiration.QueryDefaults{
			MaxResults:   cfg.Search.DefaultMaxResults,
			RadiusMeters: cfg.Search.DefaultRadiusMeters,
			LanguageCode: cfg.Search.LanguageCode,
		},
		Timeout: cfg.Places.Timeout,
	})

	var recorder *analytics.Recorder
	if cfg.DB.DSN != "" {
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres init")
		}
		defer dbPool.Close()
		store := analytics.NewStore(dbPool)
		if err := store.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("search analytics schema")
		}
		recorder = analytics.NewRecorder(store)
	} else {
		log.Warn().Msg("VAMU_DB_DSN not set; search analytics disabled")
	}

	var generator ai.WishlistGenerator
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatal().Err(err).Msg("gemini init")
		}
		defer gemini.Close()
		generator = gemini
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set; wishlist generation disabled")
	}

	var quota wishlist.QuotaGuard
	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			log.Fatal().Err(err).Msg("redis init")
		}
		defer redisClient.Close()
		quota = wishlist.NewQuotaStore(redisClient, cfg.AI.WishlistQuota)
	} else {
		log.Warn().Msg("VAMU_REDIS_ADDR not set; wishlist quota not enforced")
	}

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Inspiration: inspirationSvc,
		Wishlist:    wishlist.NewService(generator, quota),
		Analytics:   recorder,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Info:        handlers.ServiceInfo{Name: serviceName, Version: version},
	})

	log.Info().
		Str("env", cfg.Env).
		Str("places_provider", cfg.Places.Provider).
		Msg("starting " + serviceName + " v" + version)

	if err := httptransport.NewServer(cfg.HTTP.Addr, router).Run(ctx); err != nil {
		log.Error().Err(err).Msg("http server stopped")
	}

	drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	recorder.Wait(drainCtx)
	log.Info().Msg("shutdown complete")
}

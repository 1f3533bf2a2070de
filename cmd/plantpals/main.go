package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Rluis14/Plant-Pals-App/internal/application/auth"
	"github.com/Rluis14/Plant-Pals-App/internal/application/catalog"
	"github.com/Rluis14/Plant-Pals-App/internal/application/collection"
	"github.com/Rluis14/Plant-Pals-App/internal/application/ports"
	"github.com/Rluis14/Plant-Pals-App/internal/application/search"
	"github.com/Rluis14/Plant-Pals-App/internal/application/session"
	"github.com/Rluis14/Plant-Pals-App/internal/config"
	infraauth "github.com/Rluis14/Plant-Pals-App/internal/infrastructure/auth"
	httprouter "github.com/Rluis14/Plant-Pals-App/internal/infrastructure/http"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/http/handlers"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/http/middleware"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/lockout"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/persistence/postgres"
	redisstore "github.com/Rluis14/Plant-Pals-App/internal/infrastructure/persistence/redis"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/security"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/storage"
	"github.com/Rluis14/Plant-Pals-App/internal/infrastructure/weather"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	plantRepo := postgres.NewPlantRepository(pool)
	savedRepo := postgres.NewSavedPlantRepository(pool)

	var tokenStore ports.TokenStore
	if redisClient != nil {
		tokenStore = redisstore.NewTokenStore(redisClient)
	} else {
		tokenStore = postgres.NewTokenStore(pool)
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})

	pemBytes, err := cfg.LoadJWTPrivateKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT private key")
	}
	privateKey, err := infraauth.LoadRSAPrivateKeyFromPEM(pemBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT private key")
	}
	issuer := infraauth.NewTokenIssuer(privateKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	lockoutStore := lockout.NewMemoryStore(cfg.Auth.LockoutAttempts, cfg.Auth.LockoutCooldown)

	signUpUC := auth.NewSignUp(userRepo, profileRepo, hasher)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, tokenStore, lockoutStore, cfg.Auth.RequireConfirmed, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
	logoutUC := auth.NewLogout(tokenStore)
	refreshUC := auth.NewRefresh(userRepo, issuer, tokenStore, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)

	catalogSvc := catalog.NewService(plantRepo)
	images := storage.NewImageResolver(cfg.Storage.ImageBaseURL, cfg.Storage.FallbackImage)
	weatherClient := weather.NewClient(cfg.Weather.APIKey)

	// REST requests read the session from the request context; websocket
	// connections each run their own session manager.
	collectionMgr := collection.NewManager(savedRepo, middleware.ContextSessionSource{}, log)
	newSession := func() *session.Manager {
		return session.NewManager(signUpUC, loginUC, logoutUC, refreshUC, issuer)
	}

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))
	authValidator := middleware.NewAuthValidator(issuer)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:    handlers.NewAuthHandler(signUpUC, loginUC, logoutUC, refreshUC, log),
		PlantsHandler:  handlers.NewPlantsHandler(catalogSvc, collectionMgr, images),
		SavedHandler:   handlers.NewSavedHandler(collectionMgr, images, log),
		ProfileHandler: handlers.NewProfileHandler(profileRepo, log),
		HomeHandler:    handlers.NewHomeHandler(catalogSvc, weatherClient, images, log),
		HealthHandler:  handlers.NewHealthHandler(pool, redisClient),
		SearchSocket:   handlers.NewSearchSocketHandler(catalogSvc, savedRepo, images, newSession, search.DefaultDebounceWindow, log),
		RequireJWT:     authValidator.Handler,
		OptionalJWT:    authValidator.Optional,
		Log:            log,
		Secure:         secureMiddleware,
		IPRateLimit:    ipLimit,
		Metrics:        true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}

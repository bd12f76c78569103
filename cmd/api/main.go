package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"github.com/hjnengare/sayso-web-sub011/internal/adapters/email"
	"github.com/hjnengare/sayso-web-sub011/internal/adapters/geocode"
	server "github.com/hjnengare/sayso-web-sub011/internal/adapters/http_server"
	"github.com/hjnengare/sayso-web-sub011/internal/adapters/objstore"
	"github.com/hjnengare/sayso-web-sub011/internal/adapters/observability"
	redisad "github.com/hjnengare/sayso-web-sub011/internal/adapters/redis"
	"github.com/hjnengare/sayso-web-sub011/internal/adapters/sms"
	"github.com/hjnengare/sayso-web-sub011/internal/app"
	"github.com/hjnengare/sayso-web-sub011/internal/domain"
	"github.com/hjnengare/sayso-web-sub011/internal/shared"
	mysqlrepo "github.com/hjnengare/sayso-web-sub011/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	geo := geocode.NewChain(cfg.GeocodePrimaryBase, cfg.GeocodePrimaryKey, cfg.GeocodeFallback)
	smsGw := sms.New(cfg.SMSBase, cfg.SMSKey, cfg.SMSFrom)
	mailer := email.New(cfg.EmailBase, cfg.EmailKey, cfg.EmailFrom)

	// the services treat a nil store as "no media", so only hand the bucket
	// over when a base URL is actually set
	var store domain.ObjectStore
	if bucket := objstore.New(cfg.StorageBase, cfg.StorageKey, cfg.StorageBucket); bucket.Configured() {
		store = bucket
	} else {
		log.Warn().Msg("object storage not configured, media upload and cleanup disabled")
	}

	handlers := &server.Handlers{
		Businesses: app.NewBusinessService(repo, repo, cache, geo, store, cfg.CacheTTL),
		Reviews:    app.NewReviewService(repo, repo, repo, cache, store, cfg.ReviewWindow, cfg.ReviewMaxPerWin, cfg.FlagMaxPerWin),
		Claims:     app.NewClaimService(repo, repo, repo, smsGw, mailer, cfg.OTPTTL, cfg.OTPResendWait, cfg.OTPMaxAttempts),
		Saved:      app.NewSavedService(repo, repo),
		Messages:   app.NewMessageService(repo, repo, repo),
		Notifs:     app.NewNotificationService(repo),
	}

	// http
	srv := server.New(cfg.JWTSecret)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

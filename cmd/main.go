package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/config"
	"github.com/oksasatya/courseitda/internal/container"
	"github.com/oksasatya/courseitda/internal/domain/event"
	"github.com/oksasatya/courseitda/internal/infrastructure/esindex"
	"github.com/oksasatya/courseitda/internal/infrastructure/kakao"
	"github.com/oksasatya/courseitda/internal/infrastructure/memory"
	"github.com/oksasatya/courseitda/internal/infrastructure/redisbus"
	"github.com/oksasatya/courseitda/internal/interface/middleware"
	"github.com/oksasatya/courseitda/internal/router"
	"github.com/oksasatya/courseitda/pkg/helpers"
	"github.com/oksasatya/courseitda/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	container.SetConfig(cfg)
	container.SetLogger(logger)

	// Change notifications: local hub, optionally mirrored to other instances through Redis
	hub := event.NewHub(256)
	container.SetHub(hub)
	var pub event.Publisher = hub

	// Redis backs sessions, settings, search cache, rate limits and the change bridge
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		container.SetRedis(rdb)
		container.SetKV(redisbus.NewKV(rdb, cfg.AppName+":", cfg.SessionTTL))
		container.AddCheck("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })

		if cfg.ChangeBridgeEnabled {
			origin := uuid.NewString()
			pub = event.Multi{hub, redisbus.NewPublisher(rdb, cfg.ChangeChannel, origin)}
			bridge := redisbus.NewBridge(rdb, cfg.ChangeChannel, origin, hub, logger)
			go func() {
				if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.WithError(err).Error("change bridge stopped")
				}
			}()
		}
	} else {
		container.SetKV(memory.NewKV())
	}

	store, closeStore, err := container.OpenStore(ctx, cfg, pub, logger)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer closeStore()
	container.SetStore(store)

	wireAuth(cfg)
	wireSearch(cfg, logger)

	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		container.SetUploader(helpers.NewGCSUploader(gcsClient, cfg.GCSBucket))
	}

	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		rabbitPub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; welcome emails disabled")
		} else {
			defer rabbitPub.Close()
			container.SetJobs(rabbitPub)
		}
	}

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader, "X-Kakao-Rest-Key"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	// no WriteTimeout: /api/changes holds the connection open
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "store": cfg.StoreDriver}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")
	stop()

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

func wireAuth(cfg *config.Config) {
	if cfg.PasswordHasher == config.HasherBcrypt {
		container.SetHasher(helpers.BcryptHasher{})
	} else {
		container.SetHasher(helpers.MockHasher{})
	}
	if cfg.TokenMode == config.TokenJWT {
		container.SetTokens(helpers.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL))
	} else {
		container.SetTokens(helpers.MockTokenCodec{})
	}
}

func wireSearch(cfg *config.Config, logger *logrus.Logger) {
	client := kakao.NewClient(cfg.KakaoBaseURL, cfg.KakaoTimeout)
	if rdb := container.GetRedis(); rdb != nil {
		container.SetSearcher(kakao.NewCachedSearcher(client, rdb, cfg.KakaoCacheTTL, logger))
	} else {
		container.SetSearcher(client)
	}

	addrs := cfg.ESAddrs()
	if len(addrs) == 0 {
		return
	}
	es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch unavailable; saved-place search disabled")
		return
	}
	container.SetPlaceIndex(esindex.NewPlaceIndex(es, cfg.ESPlacesIndex))
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	glog "github.com/labstack/gommon/log"

	"github.com/iliyamo/filmes-api/internal/config"
	"github.com/iliyamo/filmes-api/internal/database"
	"github.com/iliyamo/filmes-api/internal/handler"
	mw "github.com/iliyamo/filmes-api/internal/middleware"
	"github.com/iliyamo/filmes-api/internal/queue"
	"github.com/iliyamo/filmes-api/internal/repository"
	"github.com/iliyamo/filmes-api/internal/router"
	queue_publisher "github.com/iliyamo/filmes-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}
	cfg := config.Load() // Load environment config

	sqlDB, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer sqlDB.Close()

	gdb, err := database.NewGorm(sqlDB, strings.EqualFold(cfg.LogLevel, "debug"))
	if err != nil {
		log.Fatalf("gorm: %v", err)
	}
	if err := database.Migrate(gdb); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var events handler.EventPublisher
	if cfg.Events.Enabled {
		pub := queue_publisher.NewPublisher(cfg.Events.URL, queue_publisher.DefaultBuffer)
		go pub.Run(ctx)
		events = pub
		go func() {
			if err := queue.StartMovieEventConsumer(ctx, cfg.Events.URL); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("movie-consumer stopped: %v", err)
			}
		}()
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig()) // nil when unreachable
	if rdb != nil {
		defer rdb.Close()
	}

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Logger.SetLevel(parseLevel(cfg.LogLevel))
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			c.Logger().Infof("request_id=%s %s %s status=%d latency=%s", v.RequestID, v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	router.RegisterRoutes(e) // Register application routes
	movies := handler.NewMovieHandler(repository.NewMovieRepo(gdb), events, cfg.MaxPageSize)
	router.RegisterMovies(e, movies, cfg.JWTSecret,
		mw.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		mw.NewRedisCache(config.LoadCacheConfig(), rdb),
	)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err) // Log and exit if server fails
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// parseLevel maps LOG_LEVEL onto gommon levels; unknown values mean info.
func parseLevel(s string) glog.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return glog.DEBUG
	case "warn", "warning":
		return glog.WARN
	case "error":
		return glog.ERROR
	case "off":
		return glog.OFF
	default:
		return glog.INFO
	}
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/joho/godotenv"

	"github.com/mxwllalpha/kodepos-worker/pkg/alert"
	"github.com/mxwllalpha/kodepos-worker/pkg/env"
	"github.com/mxwllalpha/kodepos-worker/pkg/geocode"
	"github.com/mxwllalpha/kodepos-worker/pkg/history"
	"github.com/mxwllalpha/kodepos-worker/pkg/logger"
	"github.com/mxwllalpha/kodepos-worker/pkg/middleware"
)

const ServiceName = "server"

func init() {
	logger.InitGlobalSlog(ServiceName)
}

func main() {
	_ = godotenv.Load()

	client, err := env.NewLoggingKodeposClient()
	if err != nil {
		panic(err)
	}

	geocoder := geocode.NewOpenstreetmapClient()

	// History is optional: without a database the relay simply doesn't keep
	// a lookup trail.
	var lookups history.Repository
	if dbURL := env.DatabaseURL(); dbURL != "" {
		db, err := sql.Open("pgx", dbURL)
		if err != nil {
			panic(fmt.Errorf("unable to open db conn: %w", err))
		}

		defer func() {
			if err := db.Close(); err != nil {
				slog.Error("error closing db connection", "error", err.Error())
			}
		}()

		if err := db.Ping(); err != nil {
			panic(fmt.Errorf("unable to ping database: %w", err))
		}

		slog.Info("connected to the database successfully")
		lookups = history.NewPgRepository(db)
	}

	notifier := alert.NewSlogNotifier()

	r := gin.New()
	r.Use(middleware.TraceID())
	r.Use(middleware.Recovery(notifier))
	r.Use(middleware.Logger(false))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/search", searchController(client, lookups))
	r.GET("/detect", detectController(client, lookups))
	r.GET("/locate", locateController(geocoder, client))

	if lookups != nil {
		r.GET("/history", historyController(lookups))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	port := env.Port()
	srv := &http.Server{Addr: fmt.Sprintf(":%s", port), Handler: r}
	go func() {
		slog.Info(fmt.Sprintf("serving HTTP on :%s", port))

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server shutdown abruptly", "error", err.Error())
		} else {
			slog.Info("server shutdown gracefully")
		}

		stop()
	}()

	<-ctx.Done()
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err.Error())
	}

	slog.Info("server exited")
}

package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "go-collab/cmd/api/router/v1"
	cacheAdapter "go-collab/internal/infrastructure/cache/adapter"
	cport "go-collab/internal/infrastructure/cache/port"
	"go-collab/internal/infrastructure/database"
	queueAdapter "go-collab/internal/infrastructure/queue/adapter"
	qport "go-collab/internal/infrastructure/queue/port"
	"go-collab/internal/infrastructure/realtime"
	"go-collab/internal/pkg/collab/application/task"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// Cancel on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Connect to the database on startup
	connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
	defer connectCancel()

	// Join persistence is best-effort; the relay keeps serving without a
	// database, joins are then logged and dropped instead of recorded.
	pool, err := database.NewPoolFromEnv(connectCtx)
	if err != nil {
		logger.Warn("database unavailable, joins will not be recorded", "err", err)
	} else {
		defer pool.Close()
		if err := database.EnsureSchema(connectCtx, pool); err != nil {
			// A missing schema only costs records.
			logger.Warn("schema bootstrap failed", "err", err)
		}
	}

	// Queue client + workers for best-effort join persistence. Both are
	// optional: without Redis the socket controller persists directly.
	var queueClient qport.Client
	if qc, err := queueAdapter.NewAsynqClientFromEnv(); err != nil {
		logger.Warn("queue client unavailable, joins will be persisted inline", "err", err)
	} else {
		queueClient = qc
		defer qc.Close()
	}
	if qs, err := queueAdapter.NewAsynqServer(); err != nil {
		logger.Warn("queue workers unavailable", "err", err)
	} else {
		task.RegisterRecordJoinTask(qs, pool)
		go func() {
			if err := qs.Run(ctx); err != nil {
				logger.Error("queue workers stopped", "err", err)
			}
		}()
	}

	// Cache for the join-history endpoint; optional as well.
	var cache cport.Cache
	if rc, err := cacheAdapter.NewRedisAdapter(); err != nil {
		logger.Warn("cache unavailable, join history served uncached", "err", err)
	} else {
		cache = rc
		defer rc.Close()
	}

	// Event router: registry, directory, tracker, and session fanout.
	rt := realtime.NewRouter()
	defer rt.Close()

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "OK",
		})
	})

	v1.RegisterRoutes(r, pool, queueClient, cache, rt, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server crashed", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)
}

// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"mentor-match-workers/internal/common/camunda"
	"mentor-match-workers/internal/common/config"
	"mentor-match-workers/internal/common/database"
	"mentor-match-workers/internal/common/logger"
	"mentor-match-workers/internal/common/observability"

	amp "mentor-match-workers/internal/workers/matching/assemble-mentee-profile"
	fbm "mentor-match-workers/internal/workers/matching/find-best-matches"
	qmp "mentor-match-workers/internal/workers/matching/query-mentor-pool"
	smd "mentor-match-workers/internal/workers/matching/send-match-digest"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	jaegerEndpoint := ""
	if cfg.Tracing.Enabled {
		jaegerEndpoint = cfg.Tracing.JaegerEndpoint
	}
	obs := observability.New(cfg.App.Name, jaegerEndpoint)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Register workers ---
	var workers []*camunda.CamundaWorker

	if wcfg, ok := workerConfig(cfg, fbm.TaskType); ok {
		handler := fbm.NewHandler(
			&fbm.Config{
				DefaultTopN: cfg.Matching.DefaultTopN,
				PoolCap:     cfg.Matching.PoolCap,
				Timeout:     time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			log,
		)
		workers = append(workers, startWorker(zeebe, fbm.TaskType, wcfg, handler.Handle, zapLog))
	}

	if wcfg, ok := workerConfig(cfg, amp.TaskType); ok {
		handler := amp.NewHandler(
			&amp.Config{
				CacheTTL: time.Duration(cfg.Matching.ProfileCacheTTL) * time.Second,
				Timeout:  time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			pg.DB, redisClient.Client, log,
		)
		workers = append(workers, startWorker(zeebe, amp.TaskType, wcfg, handler.Handle, zapLog))
	}

	if wcfg, ok := workerConfig(cfg, qmp.TaskType); ok {
		handler := qmp.NewHandler(
			&qmp.Config{
				IndexName: cfg.Matching.MentorIndex,
				PoolCap:   cfg.Matching.PoolCap,
				Timeout:   time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			esClient.Client, log,
		)
		workers = append(workers, startWorker(zeebe, qmp.TaskType, wcfg, handler.Handle, zapLog))
	}

	if wcfg, ok := workerConfig(cfg, smd.TaskType); ok {
		handler, err := smd.NewHandler(
			&smd.Config{
				EmailEnabled: cfg.Notifications.EmailEnabled,
				SMSEnabled:   cfg.Notifications.SMSEnabled,
				FromEmail:    cfg.Notifications.SenderEmail,
				AWSRegion:    cfg.Notifications.AWSRegion,
				MaxMatches:   5,
				Timeout:      time.Duration(wcfg.Timeout) * time.Millisecond,
			},
			log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-match-digest handler", zap.Error(err))
		}
		workers = append(workers, startWorker(zeebe, smd.TaskType, wcfg, handler.Handle, zapLog))
	}

	zapLog.Info("All workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// workerConfig resolves a worker's block; workers absent from the config run
// with the global Camunda defaults rather than being silently disabled.
func workerConfig(cfg *config.Config, taskType string) (config.WorkerConfig, bool) {
	wcfg, ok := cfg.Workers[taskType]
	if !ok {
		return config.WorkerConfig{
			Enabled:       true,
			MaxJobsActive: cfg.Camunda.MaxJobsActive,
			Timeout:       cfg.Camunda.Timeout,
		}, true
	}
	return wcfg, wcfg.Enabled
}

func startWorker(client *camunda.Client, taskType string, wcfg config.WorkerConfig, handler camunda.JobHandler, log *zap.Logger) *camunda.CamundaWorker {
	w := camunda.NewWorker(client.GetClient(), taskType, camunda.WorkerOptions{
		MaxJobsActive: wcfg.MaxJobsActive,
		Timeout:       time.Duration(wcfg.Timeout) * time.Millisecond,
	}, handler, log)
	w.Start()
	return w
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/centrifugal/centrifuge"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/httpserver"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/metrics"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/redis"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/remote"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/websocket"
	"github.com/sahanarao-sps/sps-team30-project/internal/app"
	"github.com/sahanarao-sps/sps-team30-project/internal/domain"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/config"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/logging"
	"github.com/sahanarao-sps/sps-team30-project/internal/platform/version"
)

const (
	evictionInterval = time.Minute
	shutdownTimeout  = 10 * time.Second
	redisDialTimeout = 10 * time.Second
)

type appMetrics struct {
	registry  *prometheus.Registry
	http      *metrics.HTTPMetrics
	remote    *metrics.RemoteMetrics
	analysis  *metrics.AnalysisMetrics
	websocket *metrics.WebSocketMetrics
	redis     *metrics.RedisMetrics
}

func setupMetrics() appMetrics {
	reg := metrics.NewRegistry()
	return appMetrics{
		registry:  reg,
		http:      metrics.NewHTTPMetrics(reg),
		remote:    metrics.NewRemoteMetrics(reg),
		analysis:  metrics.NewAnalysisMetrics(reg),
		websocket: metrics.NewWebSocketMetrics(reg),
		redis:     metrics.NewRedisMetrics(reg),
	}
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupRedis connects when REDIS_URL is set; nil otherwise.
func setupRedis(cfg *config.Config, m *metrics.RedisMetrics) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.RedisURL, m)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func setupNode(cfg *config.Config, surfaces websocket.SurfaceLookup, m *metrics.WebSocketMetrics, redisClient *redis.Client) *centrifuge.Node {
	node, err := websocket.NewNode(surfaces, m, cfg.LogLevel)
	if err != nil {
		slog.Error("Failed to create websocket node", "error", err)
		os.Exit(1)
	}

	if redisClient != nil {
		opts := redisClient.Options()
		brokerCfg := websocket.BrokerConfig{Address: opts.Addr, Password: opts.Password, DB: opts.DB}
		if err := websocket.SetupRedis(node, brokerCfg); err != nil {
			slog.Error("Failed to set up Redis broker", "error", err)
			os.Exit(1)
		}
	}

	if err := node.Run(); err != nil {
		slog.Error("Failed to start websocket node", "error", err)
		os.Exit(1)
	}
	return node
}

func runGracefulShutdown(srv *httpserver.Server, node *centrifuge.Node, registry *app.SurfaceRegistry) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		registry.Close()

		if err := node.Shutdown(shutdownCtx); err != nil {
			slog.Error("Websocket node shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", version.Get().String())

	m := setupMetrics()

	redisClient := setupRedis(cfg, m.redis)
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}

	remoteOpts := remote.Options{
		Timeout:        cfg.RemoteTimeout,
		CircuitBreaker: cfg.CircuitBreakerEnabled,
		Metrics:        m.remote,
	}
	orchestrator := app.NewOrchestrator(
		remote.NewTranslationClient(cfg.TranslatorURL, remoteOpts),
		remote.NewSentimentClient(cfg.SentimentURL, remoteOpts),
	)

	// The registry decorates surfaces with the node's publisher, and the node
	// asks the service which surfaces exist, so the decorator is bound late.
	var node *centrifuge.Node
	registry := app.NewSurfaceRegistry(app.RegistryConfig{
		MaxSurfaces:   cfg.MaxSurfaces,
		IdleTTL:       cfg.SurfaceIdleTTL,
		AnimationTick: cfg.AnimationTick,
		Decorate: func(id uuid.UUID, inner domain.Surface) domain.Surface {
			return websocket.NewSurfacePublisher(node, id, inner, m.websocket)
		},
		Metrics: m.analysis,
	}, clock)
	stopEviction := registry.StartEvictionTimer(evictionInterval)
	defer stopEviction()

	appSvc := app.NewService(orchestrator, registry, cfg.Languages(), m.analysis)

	node = setupNode(cfg, appSvc, m.websocket, redisClient)
	wsHandler := centrifuge.NewWebsocketHandler(node, centrifuge.WebsocketConfig{
		CheckOrigin: websocket.NewCheckOrigin(cfg.AppURL, cfg.IsDevelopment()),
	})

	var healthChecks []httpserver.HealthCheck
	if redisClient != nil {
		healthChecks = append(healthChecks, httpserver.HealthCheck{Name: "redis", Check: redisClient.Ping})
	}

	srv := httpserver.NewServer(cfg, appSvc, httpserver.Options{
		WebsocketHandler: wsHandler,
		Presence:         websocket.NewPresenceChecker(node),
		MetricsHandler:   metrics.Handler(m.registry),
		HTTPMetrics:      m.http,
		HealthChecks:     healthChecks,
	})

	done := runGracefulShutdown(srv, node, registry)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}

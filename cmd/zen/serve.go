package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/NekroDarkmoon/Zen.A5E/internal/entities"
	"github.com/NekroDarkmoon/Zen.A5E/internal/gateway"
	"github.com/NekroDarkmoon/Zen.A5E/internal/handlers/commands"
	"github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/dice"
	"github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/disambiguation"
	"github.com/NekroDarkmoon/Zen.A5E/internal/orchestrators/lookup"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/clock"
	"github.com/NekroDarkmoon/Zen.A5E/internal/pkg/idgen"
	"github.com/NekroDarkmoon/Zen.A5E/internal/repositories/compendium"
	"github.com/NekroDarkmoon/Zen.A5E/internal/services/conversion"
)

// healthService is the name the store status is reported under
const healthService = "zen.Compendium"

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot",
	Long:  `Start the chat gateway, the metrics endpoint and the gRPC health server.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("listen", "", "gateway listen address (overrides gateway.listen)")
	serveCmd.Flags().Int("health-port", 0, "gRPC health port (overrides health.port)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if v, _ := cmd.Flags().GetString("listen"); v != "" {
		cfg.Gateway.Listen = v
	}
	if v, _ := cmd.Flags().GetInt("health-port"); v != 0 {
		cfg.Health.Port = v
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		_ = store.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	repo, err := compendium.NewBreaker(&compendium.BreakerConfig{
		Repository:  store,
		Name:        cfg.Database.Driver,
		MaxFailures: cfg.Breaker.MaxFailures,
		OpenTimeout: cfg.Breaker.OpenTimeout,
		Logger:      log.Named("breaker"),
	})
	if err != nil {
		return err
	}

	redisClient, closeRedis, err := openRedis(ctx, cfg.Redis, false)
	if err != nil {
		return fmt.Errorf("failed to open redis: %w", err)
	}
	defer closeRedis()

	clk := clock.New()

	settings, err := openSettings(redisClient)
	if err != nil {
		return err
	}
	history, err := openHistory(redisClient, clk, cfg.Bot)
	if err != nil {
		return err
	}

	disambiguator, err := disambiguation.NewOrchestrator(&disambiguation.Config{
		Clock:          clk,
		IDGenerator:    idgen.NewUUID("sess"),
		DefaultTimeout: cfg.Bot.LookupTimeout,
		Logger:         log.Named("disambiguation"),
	})
	if err != nil {
		return err
	}

	resolver, err := lookup.NewOrchestrator(&lookup.Config{
		Repository:       repo,
		Disambiguator:    disambiguator,
		CandidateLimit:   cfg.Bot.CandidateLimit,
		SelectionTimeout: cfg.Bot.LookupTimeout,
		Logger:           log.Named("lookup"),
	})
	if err != nil {
		return err
	}

	converter, err := conversion.NewConverter()
	if err != nil {
		return err
	}

	roller, err := dice.NewOrchestrator(&dice.Config{Logger: log.Named("dice")})
	if err != nil {
		return err
	}

	handler, err := commands.NewHandler(&commands.HandlerConfig{
		Lookup:        resolver,
		Converter:     converter,
		Dice:          roller,
		Settings:      settings,
		History:       history,
		Clock:         clk,
		BotID:         cfg.Bot.ID,
		DefaultPrefix: cfg.Bot.DefaultPrefix,
		Version:       version,
		Logger:        log.Named("commands"),
	})
	if err != nil {
		return err
	}

	gw, err := gateway.New(&gateway.Config{
		Dispatcher: handler,
		Bot: entities.Requester{
			UserID:      cfg.Bot.ID,
			DisplayName: cfg.Bot.DisplayName,
		},
		IDGenerator:    idgen.NewUUID("msg"),
		Clock:          clk,
		OriginPatterns: cfg.Gateway.OriginPatterns,
		Logger:         log.Named("gateway"),
	})
	if err != nil {
		return err
	}
	defer gw.Close()

	mux := http.NewServeMux()
	mux.Handle("/gateway", gw)
	mux.Handle("/metrics", promhttp.Handler())
	httpSrv := &http.Server{
		Addr:              cfg.Gateway.Listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Health.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	grpcLogger := grpc_logging.LoggerFunc(zapLogFunc(log.Named("grpc")))
	grpcSrv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(grpcLogger),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(grpcLogger),
			grpc_recovery.StreamServerInterceptor(),
		),
	)
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcSrv, healthServer)
	reflection.Register(grpcSrv)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("gateway listening", zap.String("addr", cfg.Gateway.Listen))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("gateway: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("health server listening", zap.Int("port", cfg.Health.Port))
		if err := grpcSrv.Serve(lis); err != nil {
			return fmt.Errorf("health: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		watchStore(gctx, store, healthServer, cfg.Health.PingInterval)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		gw.Close()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn("gateway shutdown", zap.Error(err))
		}

		stopped := make(chan struct{})
		go func() {
			grpcSrv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-shutdownCtx.Done():
			log.Warn("graceful shutdown timeout exceeded, forcing stop")
			grpcSrv.Stop()
		case <-stopped:
		}
		return nil
	})

	return g.Wait()
}

// watchStore reports the store's reachability through the health server
// until ctx is done.
func watchStore(ctx context.Context, store compendium.Store, hs *health.Server, every time.Duration) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, every)
		defer cancel()

		status := grpc_health_v1.HealthCheckResponse_SERVING
		if err := store.Ping(pingCtx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("store ping failed", zap.Error(err))
			status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus("", status)
		hs.SetServingStatus(healthService, status)
	}

	check()
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

func zapLogFunc(l *zap.Logger) func(context.Context, grpc_logging.Level, string, ...any) {
	return func(_ context.Context, level grpc_logging.Level, msg string, fields ...any) {
		zf := make([]zap.Field, 0, len(fields)/2)
		for i := 0; i+1 < len(fields); i += 2 {
			key, ok := fields[i].(string)
			if !ok {
				key = fmt.Sprint(fields[i])
			}
			zf = append(zf, zap.Any(key, fields[i+1]))
		}

		switch level {
		case grpc_logging.LevelDebug:
			l.Debug(msg, zf...)
		case grpc_logging.LevelWarn:
			l.Warn(msg, zf...)
		case grpc_logging.LevelError:
			l.Error(msg, zf...)
		default:
			l.Info(msg, zf...)
		}
	}
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
)

var (
	healthAddr    string
	healthTimeout time.Duration
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Query a running bot's health server",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	healthCmd.Flags().StringVar(&healthAddr, "server", "localhost:50051", "gRPC health server address")
	healthCmd.Flags().DurationVar(&healthTimeout, "timeout", 5*time.Second, "request timeout")
}

func runHealth(_ *cobra.Command, _ []string) error {
	conn, err := grpc.NewClient(healthAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()

	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{
		Service: healthService,
	})
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Printf("%s: %s\n", healthService, resp.GetStatus())
	if resp.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
		return fmt.Errorf("%s is %s", healthService, resp.GetStatus())
	}
	return nil
}

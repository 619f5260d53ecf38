package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/quantfold/playbook/internal/decision"
	"github.com/quantfold/playbook/internal/httpapi"
	"github.com/quantfold/playbook/internal/metrics"
)

func runServe(cmd *cobra.Command, args []string) error {
	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")
	profilesPath, _ := cmd.Flags().GetString("profiles")

	table, err := loadProfileTable(profilesPath)
	if err != nil {
		return err
	}

	registry := metrics.NewRegistry(prometheus.DefaultRegisterer)
	engine := decision.NewEngine(table).WithMetrics(registry)

	config := httpapi.DefaultServerConfig()
	config.Host = host
	config.Port = port
	server := httpapi.NewServer(engine, config)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

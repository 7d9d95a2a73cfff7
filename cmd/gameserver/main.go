// Copyright (C) 2020-2026, Vanguard Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vanguard-rts/core/config"
	"github.com/vanguard-rts/core/lobby"
	"github.com/vanguard-rts/core/log"
)

var rootCmd = &cobra.Command{
	Use:   "gameserver",
	Short: "Vanguard RTS game-server plane: main server and per-game session hosting",
	Long: `gameserver runs the main server that accepts OpenGame/ListGames requests
over UDP and hands out a dedicated port per opened game. Each opened game
is served on its own port by a game server that handles player joins
independently of the main server's request handling.`,
}

func main() {
	rootCmd.AddCommand(runCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var (
		preset      string
		tickRateHz  int
		maxPlayers  int
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the main server and block until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := config.NewBuilder().FromPreset(config.NetworkType(preset))
			if tickRateHz > 0 {
				builder = builder.WithTickRate(tickRateHz)
			}
			if maxPlayers > 0 {
				builder = builder.WithMaxPlayers(maxPlayers)
			}
			runtime, err := builder.Build()
			if err != nil {
				return fmt.Errorf("building runtime config: %w", err)
			}

			logger := log.NewNoOpLogger()
			registry := prometheus.NewRegistry()

			server, err := lobby.NewMainServer(runtime, logger, registry)
			if err != nil {
				return fmt.Errorf("starting main server: %w", err)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
				httpServer := &http.Server{Addr: metricsAddr, Handler: mux}
				go func() {
					if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						logger.Error("metrics server exited", "error", err)
					}
				}()
				go func() {
					<-ctx.Done()
					httpServer.Close()
				}()
			}

			logger.Info("main server starting",
				"preset", runtime.Network,
				"port", runtime.MainServerPort,
				"tickInterval", runtime.TickInterval,
			)
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&preset, "preset", string(config.LocalNetwork), "network preset: local, lan, wan")
	cmd.Flags().IntVar(&tickRateHz, "tick-rate", 0, "simulation tick rate in hertz (0 keeps the preset's default)")
	cmd.Flags().IntVar(&maxPlayers, "max-players", 0, "per-game player cap (0 keeps the preset's default)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on (empty disables it)")

	return cmd
}

package main

import (
	"log"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/padangco/seagreen/dashboard"
	"github.com/padangco/seagreen/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	cfg, d, m, err := setup(ctx, reg)
	if err != nil {
		return err
	}

	sessions := dashboard.NewRegistry(d, cfg.SessionTTL, m)
	go sessions.Run(ctx, cfg.SweepInterval)

	log.Printf("🔧 Session TTL %s, pass memo size %d", cfg.SessionTTL, cfg.CacheSize)
	return server.New(d, sessions, reg).ListenAndServe(ctx, cfg.Addr)
}

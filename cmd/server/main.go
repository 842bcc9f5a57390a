// Package main is the entry point for the infra-tco HTTP server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"infra-tco/api"
	"infra-tco/internal/app"
	"infra-tco/internal/config"
	"infra-tco/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgFile := flag.String("config", "", "config file (JSON or YAML)")
	addr := flag.String("addr", "", "server address (default: server.address setting)")
	flag.Parse()

	if err := run(*cfgFile, *addr); err != nil {
		logging.Fatal("server failed", zap.Error(err))
	}
}

func run(cfgFile, addr string) error {
	s, err := config.Load(config.NewViper(), cfgFile)
	if err != nil {
		return err
	}
	config.Set(s)
	if err := logging.Initialize(s.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	if addr == "" {
		addr = s.Server.Address
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.With(zap.String("version", version)).Named("server")
	a, err := app.New(s, logger)
	if err != nil {
		return err
	}
	if a.Refresher != nil {
		logger.Info("live pricing enabled", zap.Int("targets", len(a.Targets())))
		go a.RunRefresh(ctx)
	} else {
		logging.Warn("live pricing disabled, serving offline rate tables")
	}

	srv, err := api.NewServer(version,
		api.WithEstimator(a.Estimator),
		api.WithMatcher(a.Matcher),
		api.WithIncludePricing(s.IncludePricingInResults),
		api.WithLivePricing(a.Refresher != nil),
		api.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info("starting server", zap.String("addr", addr))
	return srv.ListenAndServe(ctx, addr)
}

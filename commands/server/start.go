package server

import (
	"context"
	"net/http"
	"time"

	"github.com/iov-one/barter/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// AppGenerator lets us lazily initialize app, using home dir
// and logger potentially initialized with other flags. Application
// metrics are registered with reg.
type AppGenerator func(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error)

// StartOptions configures the running node.
type StartOptions struct {
	// Bind is the address the ABCI socket server listens on.
	Bind string
	// Debug returns stack traces in error logs.
	Debug bool
	// MetricsAddr is the address of the Prometheus endpoint. Metrics are
	// not served if empty.
	MetricsAddr string
}

// StartCmd initializes the application, and serves it over the ABCI socket
// until the process is terminated.
func StartCmd(gen AppGenerator, logger log.Logger, home string, opts StartOptions) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app, err := gen(home, logger, opts.Debug, reg)
	if err != nil {
		return err
	}

	logger.Info("Starting ABCI app", "bind", opts.Bind)
	svr, err := server.NewServer(opts.Bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "creating listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "start abci server: %s", err)
	}

	var metrics *http.Server
	if opts.MetricsAddr != "" {
		metrics = &http.Server{
			Addr:    opts.MetricsAddr,
			Handler: MetricsHandler(reg),
		}
		go func() {
			logger.Info("Serving metrics", "addr", opts.MetricsAddr)
			if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics server stopped", "err", err)
			}
		}()
	}

	cmn.TrapSignal(logger, func() {
		if err := svr.Stop(); err != nil {
			logger.Error("Stop abci server", "err", err)
		}
		if metrics != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metrics.Shutdown(ctx); err != nil {
				logger.Error("Stop metrics server", "err", err)
			}
		}
	})

	// Run forever, TrapSignal exits the process.
	select {}
}

// MetricsHandler exposes everything registered in reg in the Prometheus
// text format, under /metrics.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}

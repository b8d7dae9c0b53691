// Command selectdemo exercises xselect.Select against three producers that
// become ready at different times. It runs the race for a configurable
// number of rounds and records which channel wins each one, which makes
// select fairness under contention directly observable when graphed over
// /metrics.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/example/uconc/internal/metrics"
	"github.com/example/uconc/internal/runconfig"
	"github.com/example/uconc/internal/xlog"
	"github.com/example/uconc/internal/xpanic"
	"github.com/example/uconc/uchan"
	"github.com/example/uconc/xselect"
)

type config struct {
	runconfig.Driver `yaml:",inline"`
	MetricsAddr      string `yaml:"metrics_addr"`
	Rounds           int    `yaml:"rounds"`
}

// delayFor staggers producer i: channel 2 is quickest, the rest are slower.
func delayFor(i int) time.Duration {
	if i == 2 {
		return 1 * time.Second
	}
	return 2 * time.Second
}

func main() {
	path := flag.String("config", "config.yaml", "path to driver config")
	flag.Parse()

	var cfg config
	if err := runconfig.Load(*path, &cfg); err != nil {
		log.Warn().Err(err).Msg("using built-in defaults, could not load config")
	}
	cfg.ApplyDefaults()
	if cfg.Rounds <= 0 {
		cfg.Rounds = 1
	}
	if cfg.MetricsAddr == "" {
		cfg.MetricsAddr = ":9090"
	}

	logger := xlog.New(cfg.Logging)
	xpanic.SetLogger(logger)
	m := metrics.New(prometheus.DefaultRegisterer)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
	go func() {
		logger.Info().Str("addr", cfg.MetricsAddr).Msg("serving metrics")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("metrics server failed")
		}
	}()

	const n = 3
	chans := make([]*uchan.Chan[int], n)
	for i := range chans {
		chans[i] = uchan.New[int]()
	}

	done := make(chan struct{})
	go runRounds(chans, cfg.Rounds, m, logger, done)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-done:
	case <-quit:
		logger.Info().Msg("interrupted, shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
}

func runRounds(chans []*uchan.Chan[int], rounds int, m *metrics.Registry, logger zerolog.Logger, done chan struct{}) {
	for round := 0; round < rounds; round++ {
		for i, ch := range chans {
			i, ch := i, ch
			go func() {
				time.Sleep(delayFor(i))
				ch.Send(10*(i+1) + round)
			}()
		}

		idx, x, ok := xselect.Select(chans...)
		m.SelectWinsTotal.WithLabelValues(strconv.Itoa(idx)).Inc()
		logger.Info().Int("round", round).Int("channel", idx).Int("value", x).Bool("ok", ok).
			Msg("select winner")

		for _, ch := range chans {
			for ch.Len() > 0 {
				ch.Receive()
			}
		}
	}
	close(done)
}

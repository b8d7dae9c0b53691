// Command fibonacci runs a producer/solver/collector pipeline over two
// uchan.Chan channels: a producer submits fib(n) tasks, a pool of solver
// workers computes them, and a collector drains the results. The task
// channel is closed by the producer once it has submitted every task, and
// the result channel is closed by whichever solver happens to be the last
// one to exit its receive loop.
package main

import (
	"context"
	"flag"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/example/uconc/internal/metrics"
	"github.com/example/uconc/internal/pacer"
	"github.com/example/uconc/internal/runconfig"
	"github.com/example/uconc/internal/xlog"
	"github.com/example/uconc/internal/xpanic"
	"github.com/example/uconc/uchan"
)

type config struct {
	runconfig.Driver `yaml:",inline"`
	TaskCount        int `yaml:"task_count"`
	FibN             int `yaml:"fib_n"`
}

type task struct {
	id uuid.UUID
	n  int
}

func fib(n int) int {
	if n <= 0 {
		return 0
	}
	if n == 1 {
		return 1
	}
	return fib(n-1) + fib(n-2)
}

func main() {
	path := flag.String("config", "config.yaml", "path to driver config")
	flag.Parse()

	var cfg config
	if err := runconfig.Load(*path, &cfg); err != nil {
		log.Warn().Err(err).Msg("using built-in defaults, could not load config")
	}
	cfg.ApplyDefaults()
	if cfg.TaskCount <= 0 {
		cfg.TaskCount = 10
	}
	if cfg.FibN <= 0 {
		cfg.FibN = 30
	}

	logger := xlog.New(cfg.Logging)
	xpanic.SetLogger(logger)
	m := metrics.New(prometheus.DefaultRegisterer)

	logger.Info().Int("task_count", cfg.TaskCount).Int("fib_n", cfg.FibN).
		Int("solvers", cfg.Workers).Msg("starting fibonacci pipeline")

	chTasks := uchan.New[task]()
	chSolutions := uchan.New[int]()

	go produceTasks(chTasks, cfg, logger)

	var remaining atomic.Int64
	remaining.Store(int64(cfg.Workers))
	for i := 0; i < cfg.Workers; i++ {
		go solveTasks(chTasks, chSolutions, &remaining, m, logger)
	}

	start := time.Now()
	count := 0
	for {
		x, ok := chSolutions.Receive()
		if !ok {
			break
		}
		count++
		logger.Debug().Int("result", x).Msg("collected solution")
	}

	logger.Info().Dur("elapsed", time.Since(start)).Int("results", count).Msg("fibonacci pipeline finished")
}

// produceTasks submits cfg.TaskCount tasks, each tagged with a uuid for log
// correlation, paced through internal/pacer, then closes chTasks.
func produceTasks(chTasks *uchan.Chan[task], cfg config, logger zerolog.Logger) {
	p := pacer.New(cfg.RatePerSecond, cfg.Burst)
	ctx := context.Background()
	for i := 0; i < cfg.TaskCount; i++ {
		if err := p.Wait(ctx); err != nil {
			logger.Error().Err(err).Msg("pacer wait failed")
			break
		}
		t := task{id: uuid.New(), n: cfg.FibN}
		logger.Debug().Str("task_id", t.id.String()).Int("n", t.n).Msg("producing task")
		chTasks.Send(t)
	}
	chTasks.Close()
}

// solveTasks drains chTasks until closed, computing fib(t.n) for each task
// and forwarding it on chSolutions. The solver that observes remaining drop
// to zero is the one that closes chSolutions.
func solveTasks(chTasks *uchan.Chan[task], chSolutions *uchan.Chan[int], remaining *atomic.Int64, m *metrics.Registry, logger zerolog.Logger) {
	for {
		t, ok := chTasks.Receive()
		if !ok {
			break
		}
		logger.Debug().Str("task_id", t.id.String()).Int("n", t.n).Msg("computing fib")
		chSolutions.Send(fib(t.n))
	}
	if remaining.Add(-1) == 0 {
		chSolutions.Close()
	}
	m.ChannelLength.WithLabelValues("solutions").Set(float64(chSolutions.Len()))
}

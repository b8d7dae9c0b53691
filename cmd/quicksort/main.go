// Command quicksort sorts a large in-memory array in place using a pool of
// workers communicating over a uchan.Chan of (low, high) index intervals:
// a non-recursive, multithreaded quicksort where a worker takes an
// interval, partitions the corresponding slice around a randomly chosen
// pivot, and pushes the resulting sub-intervals back onto the channel for
// any worker to pick up.
//
// A countdown.Countdown initialized to the array length tracks how many
// elements have reached their final sorted position; the main goroutine
// waits on it instead of joining workers directly, then closes the work
// channel and lets the workers exit on their own.
package main

import (
	"flag"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/example/uconc/countdown"
	"github.com/example/uconc/internal/metrics"
	"github.com/example/uconc/internal/runconfig"
	"github.com/example/uconc/internal/xlog"
	"github.com/example/uconc/internal/xpanic"
	"github.com/example/uconc/internal/xrand"
	"github.com/example/uconc/uchan"
)

type config struct {
	runconfig.Driver `yaml:",inline"`
	ArrayLength      int `yaml:"array_length"`
}

type interval struct {
	low, high int
}

// partition rearranges a[low:high+1] around a randomly chosen pivot so that
// every element at or below the returned index is <= the pivot, and every
// element above it is greater.
func partition(a []int, low, high int) int {
	if low == high {
		return low
	}
	pi := low + xrand.Intn(high-low+1)
	p := a[pi]
	a[pi], a[low] = a[low], p

	i, j := low+1, high
	for i <= j {
		for i <= j && a[i] <= p {
			i++
		}
		if i > j {
			break
		}
		for i <= j && a[j] > p {
			j--
		}
		if i > j {
			break
		}
		a[i], a[j] = a[j], a[i]
		i++
		j--
	}
	a[low], a[j] = a[j], p
	return j
}

func main() {
	path := flag.String("config", "config.yaml", "path to driver config")
	flag.Parse()

	var cfg config
	if err := runconfig.Load(*path, &cfg); err != nil {
		log.Warn().Err(err).Msg("using built-in defaults, could not load config")
	}
	cfg.ApplyDefaults()
	if cfg.ArrayLength <= 0 {
		cfg.ArrayLength = 1000
	}

	logger := xlog.New(cfg.Logging)
	xpanic.SetLogger(logger)
	m := metrics.New(prometheus.DefaultRegisterer)

	arr := make([]int, cfg.ArrayLength)
	for i := range arr {
		arr[i] = xrand.Intn(10 * cfg.ArrayLength)
	}

	chWork := uchan.New[interval]()
	latch := countdown.New(cfg.ArrayLength)

	logger.Info().Int("array_length", cfg.ArrayLength).Int("workers", cfg.Workers).
		Msg("starting parallel quicksort")

	start := time.Now()
	for i := 0; i < cfg.Workers; i++ {
		workerID := i
		go sortWorker(arr, chWork, latch, m, workerID, logger)
	}

	chWork.Send(interval{low: 0, high: cfg.ArrayLength - 1})
	latch.Wait()
	chWork.Close()

	// Workers observe the closed, drained channel and exit on their own;
	// give them a moment to log their final counters before the process
	// returns. There is nothing left to coordinate on: every element has
	// already reached its final position once Wait returns.
	time.Sleep(10 * time.Millisecond)

	logger.Info().Dur("elapsed", time.Since(start)).Msg("quicksort finished")
	if !sorted(arr) {
		logger.Fatal().Msg("array is not sorted after quicksort completed")
	}
	logger.Info().Msg("array verified sorted")
}

func sortWorker(arr []int, chWork *uchan.Chan[interval], latch *countdown.Countdown, m *metrics.Registry, workerID int, logger zerolog.Logger) {
	workerLabel := strconv.Itoa(workerID)
	partitioned := 0
	sortedCount := 0

	for {
		iv, ok := chWork.Receive()
		if !ok {
			break
		}

		p := partition(arr, iv.low, iv.high)
		partitioned += iv.high - iv.low + 1
		sortedCount++
		latch.Dec()
		m.QuicksortElements.WithLabelValues(workerLabel).Inc()
		m.CountdownWaiting.Set(float64(latch.Get()))

		nLeft := p - iv.low
		switch {
		case nLeft > 1:
			chWork.Send(interval{low: iv.low, high: p - 1})
		case nLeft == 1:
			sortedCount++
			latch.Dec()
			m.QuicksortElements.WithLabelValues(workerLabel).Inc()
		}

		nRight := iv.high - p
		switch {
		case nRight > 1:
			chWork.Send(interval{low: p + 1, high: iv.high})
		case nRight == 1:
			sortedCount++
			latch.Dec()
			m.QuicksortElements.WithLabelValues(workerLabel).Inc()
		}
	}

	logger.Debug().Int("worker", workerID).Int("partitioned_elements", partitioned).
		Int("sorted_elements", sortedCount).Msg("worker finished")
}

func sorted(a []int) bool {
	for i := 1; i < len(a); i++ {
		if a[i-1] > a[i] {
			return false
		}
	}
	return true
}

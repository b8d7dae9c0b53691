// Package metrics exposes the toolkit's runtime introspection surface:
// per-channel select win counts, channel queue lengths, and countdown
// progress. This is the observability layer the cmd/ drivers wire up,
// following the same struct-of-named-collectors shape as an HTTP service's
// request metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry groups the Prometheus collectors the cmd/ drivers register and
// update. Construct with New and register with an *http.ServeMux via
// promhttp.Handler() in the driver's main().
type Registry struct {
	SelectWinsTotal   *prometheus.CounterVec
	ChannelLength     *prometheus.GaugeVec
	CountdownWaiting  prometheus.Gauge
	QuicksortElements *prometheus.CounterVec
}

// New constructs a Registry and registers all of its collectors with reg.
func New(reg prometheus.Registerer) *Registry {
	r := &Registry{
		SelectWinsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uconc_select_wins_total",
			Help: "Number of times a given channel index won a select call.",
		}, []string{"channel"}),
		ChannelLength: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "uconc_channel_length",
			Help: "Instantaneous number of buffered values in a named channel.",
		}, []string{"channel"}),
		CountdownWaiting: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "uconc_countdown_remaining",
			Help: "Current value of the active countdown latch.",
		}),
		QuicksortElements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uconc_quicksort_elements_total",
			Help: "Number of array elements placed at their final position, by worker.",
		}, []string{"worker"}),
	}

	reg.MustRegister(r.SelectWinsTotal, r.ChannelLength, r.CountdownWaiting, r.QuicksortElements)
	return r
}

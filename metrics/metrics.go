// Package metrics exposes dailylog.Writer activity as Prometheus metrics.
//
//	m := metrics.New(metrics.Labels{"log": "access"})
//	registry.MustRegister(m)
//	w, err := dailylog.New(dir, "access", dailylog.WithObserver(m))
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/balinomad/go-dailylog"
)

// Labels are constant labels added to every metric of a Collector.
type Labels = prometheus.Labels

// Error kinds used as the value of the "kind" label of the errors counter.
const (
	KindRotation = "rotation"
	KindIO       = "io"
	KindClosed   = "closed"
	KindOther    = "other"
)

// Collector counts writes, rotations and errors of a dailylog.Writer.
// Register it with a prometheus.Registerer and pass it to dailylog.WithObserver.
type Collector struct {
	writes      prometheus.Counter
	bytes       prometheus.Counter
	rotations   prometheus.Counter
	errors      *prometheus.CounterVec
	currentDate prometheus.Gauge
}

// Ensure Collector implements the following interfaces.
var (
	_ dailylog.Observer    = (*Collector)(nil)
	_ prometheus.Collector = (*Collector)(nil)
)

// New creates a Collector. labels tell writers of the same process apart
// and may be nil.
func New(labels Labels) *Collector {
	return &Collector{
		writes: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "dailylog_writes_total",
			Help:        "Total number of records written",
			ConstLabels: labels,
		}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "dailylog_written_bytes_total",
			Help:        "Total number of bytes written",
			ConstLabels: labels,
		}),
		rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "dailylog_rotations_total",
			Help:        "Total number of log files opened",
			ConstLabels: labels,
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "dailylog_errors_total",
			Help:        "Total number of failures by kind",
			ConstLabels: labels,
		}, []string{"kind"}),
		currentDate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "dailylog_current_file_date_seconds",
			Help:        "Date of the open log file, as a Unix timestamp of its UTC midnight",
			ConstLabels: labels,
		}),
	}
}

// ObserveWrite implements dailylog.Observer.
func (c *Collector) ObserveWrite(n int) {
	c.writes.Inc()
	c.bytes.Add(float64(n))
}

// ObserveRotation implements dailylog.Observer.
func (c *Collector) ObserveRotation(_ string, date dailylog.Date) {
	c.rotations.Inc()
	midnight := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, time.UTC)
	c.currentDate.Set(float64(midnight.Unix()))
}

// ObserveError implements dailylog.Observer.
func (c *Collector) ObserveError(err error) {
	c.errors.WithLabelValues(errorKind(err)).Inc()
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.writes.Describe(ch)
	c.bytes.Describe(ch)
	c.rotations.Describe(ch)
	c.errors.Describe(ch)
	c.currentDate.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.writes.Collect(ch)
	c.bytes.Collect(ch)
	c.rotations.Collect(ch)
	c.errors.Collect(ch)
	c.currentDate.Collect(ch)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, dailylog.ErrWriterClosed):
		return KindClosed
	case errors.Is(err, dailylog.ErrRotationFailed):
		return KindRotation
	case errors.Is(err, dailylog.ErrIO):
		return KindIO
	default:
		return KindOther
	}
}

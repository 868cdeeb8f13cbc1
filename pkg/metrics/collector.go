package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/divelink/divelink-go/pkg/device"
	"github.com/divelink/divelink-go/pkg/log"
	"github.com/divelink/divelink-go/pkg/status"
)

const namespace = "divelink"

// Collector records device session metrics.
type Collector struct {
	registry *prometheus.Registry

	operations *prometheus.CounterVec   // By device, op and status
	duration   *prometheus.HistogramVec // By device and op
	transfer   *prometheus.CounterVec   // By device and direction
	retries    *prometheus.CounterVec   // By device and op
}

// NewCollector creates a Collector with its own registry.
func NewCollector() (*Collector, error) {
	return NewCollectorWith(prometheus.NewRegistry())
}

// NewCollectorWith registers the session metrics with reg.
func NewCollectorWith(reg *prometheus.Registry) (*Collector, error) {
	c := &Collector{
		registry: reg,

		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Device session operations by result status",
		}, []string{"device", "op", "status"}),

		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Device session operation duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300}, // a dump takes minutes
		}, []string{"device", "op"}),

		transfer: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfer_bytes_total",
			Help:      "Bytes moved over the transport",
		}, []string{"device", "direction"}),

		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "retries_total",
			Help:      "Transfers retried after an I/O failure",
		}, []string{"device", "op"}),
	}

	for _, col := range []prometheus.Collector{c.operations, c.duration, c.transfer, c.retries} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return c, nil
}

// Registry returns the registry the metrics are registered with.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) ObserveOperation(t device.Type, op string, st status.Status, elapsed time.Duration) {
	c.operations.WithLabelValues(t.String(), op, st.String()).Inc()
	c.duration.WithLabelValues(t.String(), op).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveTransfer(t device.Type, dir log.Direction, n int) {
	if n <= 0 {
		return
	}
	c.transfer.WithLabelValues(t.String(), dir.String()).Add(float64(n))
}

func (c *Collector) ObserveRetry(t device.Type, op string) {
	c.retries.WithLabelValues(t.String(), op).Inc()
}

// WriteTextfile writes every metric in the node_exporter textfile format.
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// Compile-time interface satisfaction check.
var _ device.Observer = (*Collector)(nil)

package observe

import (
	"context"
	"time"

	"github.com/casualjim/vkwave/client"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records Prometheus metrics for request contexts.
type Metrics struct {
	requests *prometheus.CounterVec
	inflight *prometheus.GaugeVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vkwave",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Sent API requests by method and result state.",
		}, []string{"method", "result"}),
		inflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "vkwave",
			Subsystem: "client",
			Name:      "requests_in_flight",
			Help:      "API requests between BEFORE_REQUEST and AFTER_REQUEST.",
		}, []string{"method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vkwave",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "Time from BEFORE_REQUEST to AFTER_REQUEST.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.inflight, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Instrument hooks rc so that its lifecycle is measured.
func (m *Metrics) Instrument(rc *client.RequestContext) {
	method := string(rc.MethodName())
	var start time.Time

	rc.Signal(client.BeforeRequest, func(context.Context, *client.RequestContext) {
		start = time.Now()
		m.inflight.WithLabelValues(method).Inc()
	})
	rc.Signal(client.AfterRequest, func(_ context.Context, rc *client.RequestContext) {
		m.inflight.WithLabelValues(method).Dec()
		m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(method, rc.Result().State().String()).Inc()
	})
}

// Factory wraps next so every context it creates is instrumented.
func (m *Metrics) Factory(next client.Factory) client.Factory {
	return client.FactoryFunc(func(cb client.RequestCallback, method client.MethodName, params client.Params, exceptions ...error) *client.RequestContext {
		rc := next.CreateContext(cb, method, params, exceptions...)
		m.Instrument(rc)
		return rc
	})
}

package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/giantswarm/auth-settings/pkg/key"
)

const (
	metricSubsystem = "page"

	statusSuccess = "success"
	statusError   = "error"
)

type metrics struct {
	renders         *prometheus.CounterVec
	providerEnabled *prometheus.GaugeVec
}

func newMetrics(registry prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: key.MetricNamespace,
				Subsystem: metricSubsystem,
				Name:      "renders_total",
				Help:      "Number of settings page renders by status.",
			},
			[]string{"page", "status"},
		),
		providerEnabled: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: key.MetricNamespace,
				Subsystem: metricSubsystem,
				Name:      "provider_enabled",
				Help:      "Whether an authentication provider was enabled at the last render.",
			},
			[]string{"provider"},
		),
	}
	for _, c := range []prometheus.Collector{m.renders, m.providerEnabled} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

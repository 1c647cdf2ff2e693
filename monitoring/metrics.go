// Package monitoring 为组合引擎与用例执行器提供 Prometheus 指标。
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"dci/di"
	"dci/errors"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics 实现 di.IObserver 与 usecase.IObserver
type Metrics struct {
	compositions        *prometheus.CounterVec
	compositionDuration *prometheus.HistogramVec
	compositionErrors   *prometheus.CounterVec
	useCases            *prometheus.CounterVec
	useCaseDuration     *prometheus.HistogramVec
}

// NewMetrics 创建并注册指标；reg 为 nil 时使用独立的 Registry
func NewMetrics(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	if namespace == "" {
		namespace = "dci"
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		compositions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "compositions_total",
				Help:      "Total number of Compose/CastTo calls by target contract and outcome",
			},
			[]string{"target", "outcome"},
		),
		compositionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "composition_duration_seconds",
				Help:      "Time spent resolving a composition",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"target"},
		),
		compositionErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "composition_errors_total",
				Help:      "Failed compositions by error code",
			},
			[]string{"code"},
		),
		useCases: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "usecases_total",
				Help:      "Executed use case contexts by name and outcome",
			},
			[]string{"usecase", "outcome"},
		),
		useCaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "usecase_duration_seconds",
				Help:      "Use case execution latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"usecase"},
		),
	}

	collectors := []prometheus.Collector{
		m.compositions, m.compositionDuration, m.compositionErrors, m.useCases, m.useCaseDuration,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, errors.WrapError(err, errors.ErrCodeInternal, "register metrics collector")
		}
	}
	return m, nil
}

// ObserveComposition 实现 di.IObserver
func (m *Metrics) ObserveComposition(target di.Contract, elapsed time.Duration, err error) {
	name := target.String()
	m.compositionDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		m.compositions.WithLabelValues(name, outcomeFailure).Inc()
		m.compositionErrors.WithLabelValues(string(errors.GetErrorCode(err))).Inc()
		return
	}
	m.compositions.WithLabelValues(name, outcomeSuccess).Inc()
}

// ObserveUseCase 实现 usecase.IObserver
func (m *Metrics) ObserveUseCase(name string, elapsed time.Duration, err error) {
	m.useCaseDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}
	m.useCases.WithLabelValues(name, outcome).Inc()
}

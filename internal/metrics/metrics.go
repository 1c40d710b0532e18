package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters the API and the reaper CLI increment.
type Metrics struct {
	ProductsCreated    prometheus.Counter
	ProductUpdates     prometheus.Counter
	ValidationFailures prometheus.Counter
	CartsReaped        prometheus.Counter
	ReapRuns           prometheus.Counter
}

func New() *Metrics {
	return newWithRegisterer(prometheus.DefaultRegisterer)
}

func newWithRegisterer(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Metrics{
		ProductsCreated: registerCounter(reg, prometheus.CounterOpts{
			Name: "petshop_products_created_total",
			Help: "Total number of products created",
		}),
		ProductUpdates: registerCounter(reg, prometheus.CounterOpts{
			Name: "petshop_product_updates_total",
			Help: "Total number of product updates applied",
		}),
		ValidationFailures: registerCounter(reg, prometheus.CounterOpts{
			Name: "petshop_validation_failures_total",
			Help: "Total number of product payloads rejected by validation",
		}),
		CartsReaped: registerCounter(reg, prometheus.CounterOpts{
			Name: "petshop_carts_reaped_total",
			Help: "Total number of stale anonymous carts reclaimed",
		}),
		ReapRuns: registerCounter(reg, prometheus.CounterOpts{
			Name: "petshop_reap_runs_total",
			Help: "Total number of cart reap passes executed",
		}),
	}
}

// registerCounter tolerates re-registration so tests can build several
// Metrics instances against the default registerer.
func registerCounter(reg prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing
			}
		}
	}
	return c
}

package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConstraintViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stationd_constraint_violations_total",
		Help: "Business-rule violations rejected by the constraint engine",
	}, []string{"rule"})

	IntegrityViolationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stationd_integrity_violations_total",
		Help: "Store-level unique or foreign-key conflicts caught at commit time",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stationd_http_requests_total",
		Help: "HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	EntityWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stationd_entity_writes_total",
		Help: "Successful entity mutations by kind and operation",
	}, []string{"entity", "operation"})
)

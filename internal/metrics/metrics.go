// Package metrics exposes Prometheus collectors for RPC traffic and bill
// activity.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tabsplit"

// Collector holds every metric the server records. Each Collector owns its
// registry, so tests can create as many as they like.
type Collector struct {
	registry *prometheus.Registry

	// RPC metrics
	RPCRequests *prometheus.CounterVec
	RPCDuration *prometheus.HistogramVec

	// Bill metrics
	BillsCreated  prometheus.Counter
	ClaimUpdates  *prometheus.CounterVec
	BillsResolved *prometheus.CounterVec
	FriendsAdded  prometheus.Counter
}

// New creates a Collector registered on a fresh registry, along with the Go
// runtime and process collectors.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		RPCRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_requests_total",
				Help:      "Total number of RPC requests by procedure and code",
			},
			[]string{"procedure", "code"},
		),
		RPCDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "rpc_duration_seconds",
				Help:      "RPC handling duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"procedure"},
		),
		BillsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_created_total",
			Help:      "Total number of bills created",
		}),
		ClaimUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "claim_updates_total",
				Help:      "Total number of accepted claim changes by kind (toggle, patch)",
			},
			[]string{"kind"},
		),
		BillsResolved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bills_resolved_total",
				Help:      "Total number of bills resolved by trigger (auto, payer)",
			},
			[]string{"trigger"},
		),
		FriendsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "friends_added_total",
			Help:      "Total number of friendships created",
		}),
	}

	c.registry.MustRegister(
		c.RPCRequests,
		c.RPCDuration,
		c.BillsCreated,
		c.ClaimUpdates,
		c.BillsResolved,
		c.FriendsAdded,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveRPC records one finished RPC.
func (c *Collector) ObserveRPC(procedure, code string, elapsed time.Duration) {
	c.RPCRequests.WithLabelValues(procedure, code).Inc()
	c.RPCDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

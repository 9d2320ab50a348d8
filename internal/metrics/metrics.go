package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewCatalogRetriesTotal returns a counter of retried catalog price lookups
func NewCatalogRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_retries_total",
		Help: "Total number of retry attempts performed against the catalog",
	})
}

// Dispatch groups the counters of the dispatch engine.
type Dispatch struct {
	Created           prometheus.Counter
	Claims            *prometheus.CounterVec
	Expired           prometheus.Counter
	FanoutFailures    prometheus.Counter
	AgentReservations *prometheus.CounterVec
	Transitions       *prometheus.CounterVec
}

// NewDispatch builds unregistered dispatch counters.
func NewDispatch() *Dispatch {
	return &Dispatch{
		Created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_broadcasts_created_total",
			Help: "Broadcasts created",
		}),
		Claims: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_claims_total",
			Help: "Claim attempts by outcome",
		}, []string{"outcome"}),
		Expired: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_broadcasts_expired_total",
			Help: "Broadcasts transitioned to expired by the sweeper",
		}),
		FanoutFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_fanout_failures_total",
			Help: "Notification pushes that failed or were dropped",
		}),
		AgentReservations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_agent_reservations_total",
			Help: "Delivery agent reservation attempts by outcome",
		}, []string{"outcome"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_status_transitions_total",
			Help: "Applied status transitions by target status",
		}, []string{"status"}),
	}
}

// Collectors returns every dispatch collector for registration.
func (d *Dispatch) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		d.Created, d.Claims, d.Expired, d.FanoutFailures, d.AgentReservations, d.Transitions,
	}
}


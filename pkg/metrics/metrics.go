package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "skybook"

// Recorder holds the booking counters and HTTP instrumentation. The counter
// methods are no-ops on a nil *Recorder.
type Recorder struct {
	gatherer prometheus.Gatherer

	reservationsAllocated prometheus.Counter
	seatCollisions        prometheus.Counter
	reservationsConfirmed prometheus.Counter
	reservationsCancelled prometheus.Counter
	ticketDeliveries      *prometheus.CounterVec
	httpRequests          *prometheus.CounterVec
	httpDuration          *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		gatherer: reg,
		reservationsAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_allocated_total",
			Help:      "Reservations created by successful allocation batches.",
		}),
		seatCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seat_collisions_total",
			Help:      "Allocation batches rejected because a seat was already held.",
		}),
		reservationsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_confirmed_total",
			Help:      "Reservations confirmed with a ticket issued.",
		}),
		reservationsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_cancelled_total",
			Help:      "Reservations moved to CANCELLED.",
		}),
		ticketDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_deliveries_total",
			Help:      "Ticket delivery attempts by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		r.reservationsAllocated,
		r.seatCollisions,
		r.reservationsConfirmed,
		r.reservationsCancelled,
		r.ticketDeliveries,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

var (
	defaultRecorder *Recorder
	defaultOnce     sync.Once
)

// Default returns the process recorder, registered on its own registry
// together with the Go and process collectors.
func Default() *Recorder {
	defaultOnce.Do(func() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		defaultRecorder = New(reg)
	})
	return defaultRecorder
}

func (r *Recorder) ReservationsAllocated(n int) {
	if r == nil {
		return
	}
	r.reservationsAllocated.Add(float64(n))
}

func (r *Recorder) SeatCollision() {
	if r == nil {
		return
	}
	r.seatCollisions.Inc()
}

func (r *Recorder) ReservationConfirmed() {
	if r == nil {
		return
	}
	r.reservationsConfirmed.Inc()
}

func (r *Recorder) ReservationCancelled() {
	if r == nil {
		return
	}
	r.reservationsCancelled.Inc()
}

func (r *Recorder) TicketDelivery(ok bool) {
	if r == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	r.ticketDeliveries.WithLabelValues(result).Inc()
}

// Handler serves the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		r.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

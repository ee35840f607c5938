package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	availabilityRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_availability_requests_total",
		Help: "Availability lookups, labelled by outcome (open, closed, no_capacity).",
	}, []string{"outcome"})

	locksCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_slot_locks_created_total",
		Help: "Slot locks successfully created.",
	})

	lockContention = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_slot_lock_contention_total",
		Help: "Lock attempts rejected because another session held the slot.",
	})

	locksExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_slot_locks_expired_total",
		Help: "Slot locks purged after their TTL elapsed.",
	})

	activeLocks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "booking_slot_locks_active",
		Help: "Slot locks currently held.",
	})

	reservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "booking_reservations_created_total",
		Help: "Reservations committed through the booking flow.",
	})
)

func IncAvailability(outcome string) { availabilityRequests.WithLabelValues(outcome).Inc() }

func IncLockCreated() { locksCreated.Inc() }

func IncLockContention() { lockContention.Inc() }

func AddLocksExpired(n int) { locksExpired.Add(float64(n)) }

func SetActiveLocks(n int) { activeLocks.Set(float64(n)) }

func IncReservationCreated() { reservationsCreated.Inc() }

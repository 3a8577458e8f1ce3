// Package businessflow contains the core business logic for the shift fill engine
package businessflow

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	messagesDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shiftwave_messages_dispatched_total",
			Help: "Outbound messages accepted by the SMS provider",
		},
		[]string{"message_type"},
	)

	messagesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shiftwave_messages_failed_total",
			Help: "Outbound messages that exhausted their retry budget",
		},
		[]string{"message_type"},
	)

	shiftsFilled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shiftwave_shifts_filled_total",
			Help: "Shifts successfully assigned to an employee",
		},
	)

	shiftsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shiftwave_shifts_expired_total",
			Help: "Shifts expired by sweep or cancellation",
		},
	)

	interestRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shiftwave_interest_recorded_total",
			Help: "New interest ledger rows",
		},
	)
)

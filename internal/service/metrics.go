package service

import (
	"errors"

	"github.com/lingochat/memories-backend/internal/common"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var memoryOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "memory_operations_total",
		Help: "Memory feed operations by outcome",
	},
	[]string{"op", "outcome"},
)

// outcome labels an operation result with its error kind
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, common.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, common.ErrNotFound):
		return "not_found"
	case errors.Is(err, common.ErrForbidden):
		return "forbidden"
	default:
		return "unavailable"
	}
}

func observe(op string, err error) {
	memoryOperationsTotal.WithLabelValues(op, outcome(err)).Inc()
}

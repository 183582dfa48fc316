package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type BusinessMetrics struct {
	EvaluationsTotal   *prometheus.CounterVec
	VerificationsTotal *prometheus.CounterVec
	InquiriesTotal     *prometheus.CounterVec
}

var Business = BusinessMetrics{
	EvaluationsTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "origination_engine_evaluations_total",
			Help: "Total number of credit evaluations by decision tier.",
		},
		[]string{"decision"},
	),
	VerificationsTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "origination_engine_verifications_total",
			Help: "Total number of KYC verification runs by outcome.",
		},
		[]string{"status"},
	),
	InquiriesTotal: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "origination_engine_customer_inquiries_total",
			Help: "Total number of customer inquiries by result.",
		},
		[]string{"result"},
	),
}

func RecordEvaluation(decision string) {
	Business.EvaluationsTotal.WithLabelValues(decision).Inc()
}

func RecordVerification(status string) {
	Business.VerificationsTotal.WithLabelValues(status).Inc()
}

func RecordInquiry(result string) {
	Business.InquiriesTotal.WithLabelValues(result).Inc()
}

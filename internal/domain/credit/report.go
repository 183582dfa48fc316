package credit

import (
	"context"
	"errors"
)

var ErrReportNotFound = errors.New("credit report not found")

// PaymentDelayed is the payment_history token marking a delayed installment.
const PaymentDelayed = "delay"

// CreditReport is the bureau snapshot for one customer. Immutable once
// loaded; the engine only ever reads it.
type CreditReport struct {
	CustomerID       string   `json:"customer_id"`
	CibilScore       int      `json:"cibil_score"`
	UtilizationRatio float64  `json:"utilization_ratio"`
	InquiriesLast6M  int      `json:"inquiries_last_6m"`
	PaymentHistory   []string `json:"payment_history"`
	DefaultsCount    int      `json:"defaults_count"`
	ReportDate       string   `json:"report_date,omitempty"`
}

func (r *CreditReport) HasDelayedPayments() bool {
	for _, token := range r.PaymentHistory {
		if token == PaymentDelayed {
			return true
		}
	}
	return false
}

type ReportRepository interface {
	FindByCustomerID(ctx context.Context, customerID string) (*CreditReport, error)
}

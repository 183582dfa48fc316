package memory

import (
	"context"
	"sync"

	"origination-engine/internal/domain/credit"
)

// ReportRepository serves immutable bureau snapshots.
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[string]*credit.CreditReport
}

func NewReportRepository(seed []*credit.CreditReport) *ReportRepository {
	repo := &ReportRepository{reports: make(map[string]*credit.CreditReport)}
	for _, rep := range seed {
		clone := *rep
		repo.reports[clone.CustomerID] = &clone
	}
	return repo
}

func (r *ReportRepository) FindByCustomerID(_ context.Context, customerID string) (*credit.CreditReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, ok := r.reports[customerID]
	if !ok {
		return nil, credit.ErrReportNotFound
	}
	clone := *report
	clone.PaymentHistory = append([]string(nil), report.PaymentHistory...)
	return &clone, nil
}

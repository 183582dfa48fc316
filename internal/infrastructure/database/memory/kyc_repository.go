package memory

import (
	"context"
	"sync"

	"origination-engine/internal/domain/kyc"
)

type KYCRepository struct {
	mu      sync.RWMutex
	records map[string]*kyc.Record
}

func NewKYCRepository(seed []*kyc.Record) *KYCRepository {
	repo := &KYCRepository{records: make(map[string]*kyc.Record)}
	for _, rec := range seed {
		repo.records[rec.CustomerID] = cloneKYCRecord(rec)
	}
	return repo
}

func (r *KYCRepository) FindByCustomerID(_ context.Context, customerID string) (*kyc.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[customerID]
	if !ok {
		return nil, kyc.ErrNotFound
	}
	return cloneKYCRecord(record), nil
}

func (r *KYCRepository) Save(_ context.Context, record *kyc.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records[record.CustomerID] = cloneKYCRecord(record)
	return nil
}

func cloneKYCRecord(record *kyc.Record) *kyc.Record {
	clone := *record
	clone.Documents = append([]kyc.Document(nil), record.Documents...)
	if record.LastVerified != nil {
		t := *record.LastVerified
		clone.LastVerified = &t
	}
	return &clone
}

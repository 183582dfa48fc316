package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"origination-engine/internal/domain/customer"
)

// CustomerRepository is the mutex-guarded in-memory customer directory.
// The single lock makes FindOrCreate atomic per phone number.
type CustomerRepository struct {
	mu      sync.RWMutex
	byID    map[string]*customer.Profile
	order   []string
	nextSeq int
	logger  *slog.Logger
}

func NewCustomerRepository(seed []*customer.Profile, logger *slog.Logger) *CustomerRepository {
	repo := &CustomerRepository{
		byID:    make(map[string]*customer.Profile),
		nextSeq: 1,
		logger:  logger.With(slog.String("component", "memory.CustomerRepository")),
	}
	for _, p := range seed {
		clone := *p
		clone.Phone = customer.NormalizePhone(clone.Phone)
		repo.byID[clone.CustomerID] = &clone
		repo.order = append(repo.order, clone.CustomerID)
		repo.nextSeq++
	}
	return repo
}

func (r *CustomerRepository) FindByID(_ context.Context, customerID string) (*customer.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.byID[customerID]
	if !ok {
		return nil, customer.ErrNotFound
	}
	clone := *profile
	return &clone, nil
}

func (r *CustomerRepository) FindByPhone(_ context.Context, phone string) (*customer.Profile, error) {
	normalized := customer.NormalizePhone(phone)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if profile := r.findByPhoneLocked(normalized); profile != nil {
		clone := *profile
		return &clone, nil
	}
	return nil, customer.ErrNotFound
}

func (r *CustomerRepository) FindAll(_ context.Context) ([]*customer.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*customer.Profile, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.byID[id]
		profiles = append(profiles, &clone)
	}
	return profiles, nil
}

func (r *CustomerRepository) FindOrCreate(_ context.Context, candidate *customer.Profile) (*customer.Profile, bool, error) {
	normalized := customer.NormalizePhone(candidate.Phone)

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing := r.findByPhoneLocked(normalized); existing != nil {
		clone := *existing
		return &clone, false, nil
	}

	stored := *candidate
	stored.Phone = normalized
	stored.CustomerID = fmt.Sprintf("C%03d", r.nextSeq)
	r.nextSeq++
	r.byID[stored.CustomerID] = &stored
	r.order = append(r.order, stored.CustomerID)

	r.logger.Debug("Created customer record", "customerID", stored.CustomerID)
	clone := stored
	return &clone, true, nil
}

func (r *CustomerRepository) Upsert(_ context.Context, profile *customer.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *profile
	clone.Phone = customer.NormalizePhone(clone.Phone)
	if _, exists := r.byID[clone.CustomerID]; !exists {
		r.order = append(r.order, clone.CustomerID)
	}
	r.byID[clone.CustomerID] = &clone
	return nil
}

// findByPhoneLocked assumes the caller holds at least the read lock.
func (r *CustomerRepository) findByPhoneLocked(normalizedPhone string) *customer.Profile {
	for _, id := range r.order {
		if r.byID[id].Phone == normalizedPhone {
			return r.byID[id]
		}
	}
	return nil
}

package memory

import (
	"context"
	"sync"

	"origination-engine/internal/domain/offer"
)

type OfferRepository struct {
	mu     sync.RWMutex
	offers []*offer.Offer
}

func NewOfferRepository(seed []*offer.Offer) *OfferRepository {
	repo := &OfferRepository{}
	for _, o := range seed {
		clone := *o
		repo.offers = append(repo.offers, &clone)
	}
	return repo
}

func (r *OfferRepository) FindAll(_ context.Context) ([]*offer.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offers := make([]*offer.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		clone := *o
		offers = append(offers, &clone)
	}
	return offers, nil
}

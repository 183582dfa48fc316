package customer

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("customer not found")

// Repository abstracts the customer directory. Implementations own all
// synchronization; in particular FindOrCreate must be atomic so that
// concurrent inquiries for one phone number never create two records.
type Repository interface {
	FindByID(ctx context.Context, customerID string) (*Profile, error)

	FindByPhone(ctx context.Context, phone string) (*Profile, error)

	FindAll(ctx context.Context) ([]*Profile, error)

	// FindOrCreate returns the existing profile for the candidate's phone
	// number, or stores the candidate (assigning its CustomerID) and
	// returns it. The second result reports whether a record was created.
	FindOrCreate(ctx context.Context, candidate *Profile) (*Profile, bool, error)

	Upsert(ctx context.Context, profile *Profile) error
}

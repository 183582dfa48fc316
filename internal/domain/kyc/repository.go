package kyc

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kyc record not found")

type Repository interface {
	FindByCustomerID(ctx context.Context, customerID string) (*Record, error)

	Save(ctx context.Context, record *Record) error
}

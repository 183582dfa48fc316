package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"origination-engine/internal/infrastructure/monitoring"
	"origination-engine/internal/pkg/apperrors"
)

// InquiryInput carries the find-or-create request. Only Phone is required;
// the rest default the way the intake flow expects.
type InquiryInput struct {
	Phone      string
	Name       string
	Email      string
	LoanAmount float64
	Purpose    string
}

// InquiryResult reports whether the phone number matched an existing
// customer, plus the fields the intake flow needs either way.
type InquiryResult struct {
	CustomerExists   bool
	CustomerID       string
	PreApprovedLimit float64
	CreditScore      int
	Status           Status
	NextStep         string
}

type CustomerService interface {
	GetByID(ctx context.Context, customerID string) (*Profile, error)
	GetByPhone(ctx context.Context, phone string) (*Profile, error)
	ListAll(ctx context.Context) ([]*Profile, error)

	// Inquire is the idempotent find-or-create path: concurrent inquiries
	// for one phone number resolve to a single record.
	Inquire(ctx context.Context, input InquiryInput) (*InquiryResult, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   Repository
	logger *slog.Logger
}

func NewCustomerService(repo Repository, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	return &customerService{
		repo:   repo,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) GetByID(ctx context.Context, customerID string) (*Profile, error) {
	s.logger.InfoContext(ctx, "Fetching customer by ID", slog.String("customerID", customerID))

	profile, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found", slog.String("customerID", customerID))
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}
	return profile, nil
}

func (s *customerService) GetByPhone(ctx context.Context, phone string) (*Profile, error) {
	normalized := NormalizePhone(phone)
	s.logger.InfoContext(ctx, "Fetching customer by phone")

	if normalized == "" {
		return nil, fmt.Errorf("%w: phone cannot be empty", apperrors.ErrInvalidArgument)
	}

	profile, err := s.repo.FindByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found by phone")
			return nil, fmt.Errorf("%w: customer", apperrors.ErrNotFound)
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer by phone", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer by phone: %w", err)
	}
	return profile, nil
}

func (s *customerService) ListAll(ctx context.Context) ([]*Profile, error) {
	s.logger.InfoContext(ctx, "Listing all customers")

	profiles, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	return profiles, nil
}

func (s *customerService) Inquire(ctx context.Context, input InquiryInput) (*InquiryResult, error) {
	s.logger.InfoContext(ctx, "Processing customer inquiry")

	phone := NormalizePhone(input.Phone)
	if phone == "" {
		s.logger.WarnContext(ctx, "Validation failed: phone is empty")
		return nil, fmt.Errorf("%w: phone is required", apperrors.ErrInvalidArgument)
	}

	candidate := &Profile{
		Name:       strings.TrimSpace(input.Name),
		Phone:      phone,
		Email:      strings.TrimSpace(input.Email),
		LoanAmount: input.LoanAmount,
		Purpose:    input.Purpose,
		Status:     StatusNewInquiry,
		CreatedAt:  time.Now().UTC(),
	}
	if candidate.Name == "" {
		candidate.Name = "New Customer"
	}
	if candidate.Email == "" {
		candidate.Email = fmt.Sprintf("%s@example.com", phone)
	}
	if candidate.LoanAmount <= 0 {
		candidate.LoanAmount = 100000
	}
	if candidate.Purpose == "" {
		candidate.Purpose = "Personal"
	}

	profile, created, err := s.repo.FindOrCreate(ctx, candidate)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error during find-or-create", slog.Any("error", err))
		return nil, fmt.Errorf("failed to process inquiry: %w", err)
	}

	if !created {
		monitoring.RecordInquiry("existing")
		s.logger.InfoContext(ctx, "Inquiry matched existing customer", slog.String("customerID", profile.CustomerID))
		return &InquiryResult{
			CustomerExists:   true,
			CustomerID:       profile.CustomerID,
			PreApprovedLimit: profile.PreApprovedLimit,
			CreditScore:      profile.CreditScore,
			Status:           StatusExisting,
		}, nil
	}

	monitoring.RecordInquiry("created")
	s.logger.InfoContext(ctx, "Inquiry created new customer", slog.String("customerID", profile.CustomerID))
	return &InquiryResult{
		CustomerExists: false,
		CustomerID:     profile.CustomerID,
		Status:         StatusNewCustomer,
		NextStep:       "KYC_VERIFICATION",
	}, nil
}

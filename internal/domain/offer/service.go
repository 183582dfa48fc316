package offer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"origination-engine/internal/domain/credit"
	"origination-engine/internal/domain/customer"
	"origination-engine/internal/infrastructure/cache"
	"origination-engine/internal/pkg/apperrors"
)

// PersonalizedBundle is the filtered, priced catalog for one customer.
type PersonalizedBundle struct {
	CustomerID       string              `json:"customer_id"`
	EligibleOffers   []PersonalizedOffer `json:"eligible_offers"`
	RecommendedOffer *PersonalizedOffer  `json:"recommended_offer"`
}

// EMIQuote is the standalone installment calculation response.
type EMIQuote struct {
	Principal           float64 `json:"principal"`
	MonthlyInterestRate float64 `json:"monthly_interest_rate"`
	TenureMonths        int     `json:"tenure_months"`
	MonthlyEMI          float64 `json:"monthly_emi"`
	TotalInterest       float64 `json:"total_interest"`
	TotalPayable        float64 `json:"total_payable"`
}

type OfferService interface {
	ListOffers(ctx context.Context) ([]*Offer, error)

	// PersonalizedOffers filters the catalog by the customer's credit
	// score and income, prices each eligible offer, and caches the bundle
	// per phone number.
	PersonalizedOffers(ctx context.Context, phone string) (*PersonalizedBundle, error)

	// QuoteEMI computes a standalone installment quote.
	QuoteEMI(ctx context.Context, principal, annualRatePercent float64, tenureMonths int) (*EMIQuote, error)
}

var _ OfferService = (*offerService)(nil)

type offerService struct {
	offers    Repository
	customers customer.Repository
	cache     cache.Cache
	cacheTTL  time.Duration
	logger    *slog.Logger
}

func NewOfferService(offers Repository, customers customer.Repository, bundleCache cache.Cache, cacheTTL time.Duration, logger *slog.Logger) OfferService {
	if offers == nil {
		panic("offer repository cannot be nil")
	}
	if customers == nil {
		panic("customer repository cannot be nil")
	}
	if bundleCache == nil {
		bundleCache = cache.NewMemoryCache()
	}
	return &offerService{
		offers:    offers,
		customers: customers,
		cache:     bundleCache,
		cacheTTL:  cacheTTL,
		logger:    logger.With(slog.String("component", "offerService")),
	}
}

func (s *offerService) ListOffers(ctx context.Context) ([]*Offer, error) {
	s.logger.InfoContext(ctx, "Listing loan offers")

	offers, err := s.offers.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing offers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

func (s *offerService) PersonalizedOffers(ctx context.Context, phone string) (*PersonalizedBundle, error) {
	normalized := customer.NormalizePhone(phone)
	s.logger.InfoContext(ctx, "Building personalized offers")

	cacheKey := "offers:personalized:" + normalized
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var bundle PersonalizedBundle
		if err := json.Unmarshal([]byte(cached), &bundle); err == nil {
			s.logger.DebugContext(ctx, "Personalized offers served from cache")
			return &bundle, nil
		}
		s.logger.WarnContext(ctx, "Discarding unreadable cache entry", slog.String("key", cacheKey))
	}

	profile, err := s.customers.FindByPhone(ctx, normalized)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found for personalized offers")
			return nil, fmt.Errorf("%w: customer", apperrors.ErrNotFound)
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer by phone", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer by phone: %w", err)
	}

	catalog, err := s.offers.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing offers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	bundle := &PersonalizedBundle{
		CustomerID:     profile.CustomerID,
		EligibleOffers: []PersonalizedOffer{},
	}
	for _, o := range catalog {
		if profile.CreditScore < o.EligibilityCriteria.MinCreditScore {
			continue
		}
		if profile.MonthlyIncome < o.EligibilityCriteria.MinMonthlyIncome {
			continue
		}
		bundle.EligibleOffers = append(bundle.EligibleOffers, personalize(o, profile))
	}
	if len(bundle.EligibleOffers) > 0 {
		bundle.RecommendedOffer = &bundle.EligibleOffers[0]
	}

	if encoded, err := json.Marshal(bundle); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(encoded), s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "Failed to cache personalized offers", slog.Any("error", err))
		}
	}

	s.logger.InfoContext(ctx, "Personalized offers built",
		slog.String("customerID", profile.CustomerID),
		slog.Int("eligible", len(bundle.EligibleOffers)))
	return bundle, nil
}

// personalize prices one offer for the customer: the lower bound of the
// advertised range, minus 0.5 above a 750 score, or the upper bound plus
// 1.0 below 650. The processing fee uses the final personalized rate.
func personalize(o *Offer, profile *customer.Profile) PersonalizedOffer {
	rate := o.InterestRateRange[0]
	switch {
	case profile.CreditScore > 750:
		rate = o.InterestRateRange[0] - 0.5
	case profile.CreditScore < 650:
		rate = o.InterestRateRange[1] + 1.0
	}

	eligible := math.Min(
		profile.PreApprovedLimit,
		profile.MonthlyIncome*60-profile.CurrentMonthlyEMI,
	)
	if eligible < 0 {
		eligible = 0
	}

	return PersonalizedOffer{
		Offer:                    *o,
		PersonalizedInterestRate: rate,
		EligibleAmount:           eligible,
		ProcessingFee:            math.Round(rate * profile.PreApprovedLimit / 100),
	}
}

func (s *offerService) QuoteEMI(ctx context.Context, principal, annualRatePercent float64, tenureMonths int) (*EMIQuote, error) {
	s.logger.InfoContext(ctx, "Calculating EMI quote",
		slog.Float64("principal", principal),
		slog.Float64("annualRate", annualRatePercent),
		slog.Int("tenureMonths", tenureMonths))

	emi, err := credit.ComputeInstallment(principal, annualRatePercent, tenureMonths)
	if err != nil {
		return nil, err
	}

	total := emi * float64(tenureMonths)
	return &EMIQuote{
		Principal:           principal,
		MonthlyInterestRate: annualRatePercent / 12,
		TenureMonths:        tenureMonths,
		MonthlyEMI:          math.Round(emi),
		TotalInterest:       math.Round(total - principal),
		TotalPayable:        math.Round(total),
	}, nil
}

package credit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"origination-engine/internal/domain/customer"
	"origination-engine/internal/event"
	"origination-engine/internal/infrastructure/monitoring"
	"origination-engine/internal/infrastructure/recorder"
	"origination-engine/internal/pkg/apperrors"
)

// CustomerDetails is the profile excerpt attached to an enriched report.
type CustomerDetails struct {
	Name          string  `json:"name,omitempty"`
	MonthlyIncome float64 `json:"monthly_income,omitempty"`
	CurrentEMI    float64 `json:"current_emi,omitempty"`
}

// EnrichedReport is the bureau report combined with customer context and
// the scoring model's summary, as served by GET /credit/{customerId}.
type EnrichedReport struct {
	*CreditReport
	CustomerDetails CustomerDetails `json:"customer_details"`
	Decision        ScoreBreakdown  `json:"decision"`
	ReportGenerated time.Time       `json:"report_generated"`
}

type CreditService interface {
	// GetEnrichedReport fetches the bureau report and scores it. A missing
	// report is ErrNotFound; a missing customer profile is tolerated and
	// scored at worst-case DTI.
	GetEnrichedReport(ctx context.Context, customerID string) (*EnrichedReport, error)

	// Evaluate runs the decision classifier for one application. Missing
	// customer or bureau data surfaces as an invalid-input error, per the
	// evaluation endpoint's contract.
	Evaluate(ctx context.Context, customerID string, req EvaluationRequest) (*CreditDecision, error)
}

var _ CreditService = (*creditService)(nil)

type creditService struct {
	reports       ReportRepository
	customers     customer.Repository
	publisher     event.EventPublisher
	auditor       recorder.Recorder
	referenceRate float64
	logger        *slog.Logger
}

func NewCreditService(reports ReportRepository, customers customer.Repository, publisher event.EventPublisher, auditor recorder.Recorder, referenceAnnualRate float64, logger *slog.Logger) CreditService {
	if reports == nil {
		panic("report repository cannot be nil")
	}
	if customers == nil {
		panic("customer repository cannot be nil")
	}
	if publisher == nil {
		publisher = event.NewNoopPublisher()
	}
	if auditor == nil {
		auditor = recorder.NewNoopRecorder()
	}
	if referenceAnnualRate <= 0 {
		referenceAnnualRate = 10.5
	}
	return &creditService{
		reports:       reports,
		customers:     customers,
		publisher:     publisher,
		auditor:       auditor,
		referenceRate: referenceAnnualRate,
		logger:        logger.With(slog.String("component", "creditService")),
	}
}

func (s *creditService) GetEnrichedReport(ctx context.Context, customerID string) (*EnrichedReport, error) {
	s.logger.InfoContext(ctx, "Fetching enriched credit report", slog.String("customerID", customerID))

	report, err := s.reports.FindByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			s.logger.WarnContext(ctx, "Credit report not found", slog.String("customerID", customerID))
			return nil, fmt.Errorf("%w: credit report for customer %s", apperrors.ErrNotFound, customerID)
		}
		s.logger.ErrorContext(ctx, "Repository error fetching credit report", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to fetch credit report for %s: %v", apperrors.ErrInternalServer, customerID, err)
	}

	profile, err := s.customers.FindByID(ctx, customerID)
	if err != nil && !errors.Is(err, customer.ErrNotFound) {
		s.logger.ErrorContext(ctx, "Repository error fetching customer profile", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to fetch customer %s: %v", apperrors.ErrInternalServer, customerID, err)
	}

	enriched := &EnrichedReport{
		CreditReport:    report,
		Decision:        Score(report, profile),
		ReportGenerated: time.Now().UTC(),
	}
	if profile != nil {
		enriched.CustomerDetails = CustomerDetails{
			Name:          profile.Name,
			MonthlyIncome: profile.MonthlyIncome,
			CurrentEMI:    profile.CurrentMonthlyEMI,
		}
	}

	s.logger.InfoContext(ctx, "Enriched credit report ready",
		slog.String("customerID", customerID),
		slog.String("category", string(enriched.Decision.Category)))
	return enriched, nil
}

func (s *creditService) Evaluate(ctx context.Context, customerID string, req EvaluationRequest) (*CreditDecision, error) {
	s.logger.InfoContext(ctx, "Evaluating credit application",
		slog.String("customerID", customerID),
		slog.Float64("requestedAmount", req.RequestedAmount),
		slog.Int("tenureMonths", req.TenureMonths))

	report, err := s.reports.FindByCustomerID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			s.logger.WarnContext(ctx, "No bureau data for evaluation", slog.String("customerID", customerID))
			return nil, fmt.Errorf("%w: customer data not found", apperrors.ErrInvalidArgument)
		}
		return nil, fmt.Errorf("%w: failed to fetch credit report for %s: %v", apperrors.ErrInternalServer, customerID, err)
	}

	profile, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			s.logger.WarnContext(ctx, "No customer profile for evaluation", slog.String("customerID", customerID))
			return nil, fmt.Errorf("%w: customer data not found", apperrors.ErrInvalidArgument)
		}
		return nil, fmt.Errorf("%w: failed to fetch customer %s: %v", apperrors.ErrInternalServer, customerID, err)
	}

	decision, err := Evaluate(req, report, profile, s.referenceRate)
	if err != nil {
		s.logger.WarnContext(ctx, "Evaluation rejected", slog.Any("error", err))
		return nil, err
	}

	monitoring.RecordEvaluation(string(decision.Decision))
	s.recordAndPublish(ctx, report, profile, decision)

	s.logger.InfoContext(ctx, "Credit application evaluated",
		slog.String("customerID", customerID),
		slog.String("decision", string(decision.Decision)),
		slog.Float64("approvedAmount", decision.ApprovedAmount))
	return decision, nil
}

// recordAndPublish writes the audit row and emits the decision event.
// Both are best effort; failures are logged, never surfaced to the caller.
func (s *creditService) recordAndPublish(ctx context.Context, report *CreditReport, profile *customer.Profile, decision *CreditDecision) {
	breakdown := Score(report, profile)

	if err := s.auditor.RecordEvaluation(ctx, &recorder.EvaluationRecord{
		CustomerID:      decision.CustomerID,
		RequestedAmount: decision.RequestedAmount,
		TenureMonths:    decision.TenureMonths,
		Decision:        string(decision.Decision),
		CurrentDTI:      decision.CurrentDTI,
		ProjectedDTI:    decision.ProjectedDTI,
		ApprovedAmount:  decision.ApprovedAmount,
		TotalScore:      breakdown.TotalScore,
	}); err != nil {
		s.logger.ErrorContext(ctx, "Failed to record evaluation", slog.Any("error", err))
	}

	evt := event.DecisionEvaluatedEvent{
		Timestamp: time.Now().UTC(),
		Payload: event.DecisionPayload{
			CustomerID:      decision.CustomerID,
			RequestedAmount: decision.RequestedAmount,
			TenureMonths:    decision.TenureMonths,
			Decision:        string(decision.Decision),
			ApprovedAmount:  decision.ApprovedAmount,
			ProjectedDTI:    decision.ProjectedDTI,
		},
	}
	if err := s.publisher.PublishDecisionEvaluated(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish decision event", slog.Any("error", err))
	}
}

package event

import (
	"context"
	"time"
)

// DecisionPayload mirrors the evaluation result for downstream consumers.
type DecisionPayload struct {
	CustomerID      string  `json:"customerId"`
	RequestedAmount float64 `json:"requestedAmount"`
	TenureMonths    int     `json:"tenureMonths"`
	Decision        string  `json:"decision"`
	ApprovedAmount  float64 `json:"approvedAmount"`
	ProjectedDTI    float64 `json:"projectedDti"`
}

type DecisionEvaluatedEvent struct {
	Timestamp time.Time       `json:"timestamp"`
	Payload   DecisionPayload `json:"payload"`
}

type EventPublisher interface {
	PublishDecisionEvaluated(ctx context.Context, event DecisionEvaluatedEvent) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (n *NoopPublisher) PublishDecisionEvaluated(_ context.Context, _ DecisionEvaluatedEvent) error {
	return nil
}

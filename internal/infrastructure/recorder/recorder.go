package recorder

import "context"

// EvaluationRecord is one row of the evaluation audit trail.
type EvaluationRecord struct {
	CustomerID      string
	RequestedAmount float64
	TenureMonths    int
	Decision        string
	CurrentDTI      float64
	ProjectedDTI    float64
	ApprovedAmount  float64
	TotalScore      float64
}

// Recorder persists evaluation outcomes for later analysis.
type Recorder interface {
	RecordEvaluation(ctx context.Context, rec *EvaluationRecord) error
	Close() error
}

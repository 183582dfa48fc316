package recorder

import "context"

// NoopRecorder is used when no audit database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvaluation(_ context.Context, _ *EvaluationRecord) error { return nil }
func (n *NoopRecorder) Close() error                                                  { return nil }

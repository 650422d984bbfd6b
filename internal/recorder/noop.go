package recorder

import (
	"context"

	"SaaSTracker/internal/tracker"
)

// NoopRecorder is used when no export path is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) Record(_ context.Context, _ tracker.Dashboard) error { return nil }
func (n *NoopRecorder) Close() error                                       { return nil }

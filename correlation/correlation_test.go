package correlation

import (
	"context"
	"testing"
)

func TestFromContext_Absent(t *testing.T) {
	ids := FromContext(context.Background())
	if ids.RequestID != "" || ids.CorrelationID != "" {
		t.Errorf("expected zero IDs, got %+v", ids)
	}
}

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	if got := FromContext(ctx).RequestID; got != "req-1" {
		t.Errorf("expected req-1, got %q", got)
	}
}

func TestWithRequestID_PreservesCorrelationID(t *testing.T) {
	ctx := WithIDs(context.Background(), IDs{CorrelationID: "corr-1"})
	ctx = WithRequestID(ctx, "req-1")

	ids := FromContext(ctx)
	if ids.RequestID != "req-1" {
		t.Errorf("expected req-1, got %q", ids.RequestID)
	}
	if ids.CorrelationID != "corr-1" {
		t.Errorf("correlation id should be preserved, got %q", ids.CorrelationID)
	}
}

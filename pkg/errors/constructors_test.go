package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestInvalidInputCarriesField(t *testing.T) {
	err := InvalidInput("lead_time_days", 0, "must be positive")
	if err.Code() != CodeInvalidInput {
		t.Fatalf("expected invalid input, got %s", err.Code())
	}
	if err.Message() != "lead_time_days must be positive" {
		t.Fatalf("unexpected message %q", err.Message())
	}
	details, ok := err.Details().(map[string]any)
	if !ok || details["lead_time_days"] != 0 {
		t.Fatalf("expected lead_time_days detail, got %#v", err.Details())
	}
}

func TestNoCandidateNamesOrder(t *testing.T) {
	err := NoCandidate("order-9")
	if err.Error() != "NO_CANDIDATE_AVAILABLE: no warehouses available for order order-9" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
	details, ok := err.Details().(map[string]any)
	if !ok || details["order_id"] != "order-9" {
		t.Fatalf("expected order_id detail, got %#v", err.Details())
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(NoCandidate("order-1")) {
		t.Fatal("no candidate should not be retryable")
	}
	if Retryable(fmt.Errorf("wrapped: %w", InvalidInput("quantity", -1, "must be positive"))) {
		t.Fatal("invalid input should not be retryable")
	}
	if Retryable(stdErrors.New("plain")) {
		t.Fatal("untyped errors follow internal metadata")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("pricing: %w", NoCandidate("order-3"))
	if !stdErrors.Is(err, New(CodeNoCandidateAvailable, "")) {
		t.Fatal("expected errors.Is to match on code")
	}
	if stdErrors.Is(err, New(CodeInvalidInput, "")) {
		t.Fatal("expected errors.Is to reject a different code")
	}
}

func TestWithDetailAccumulates(t *testing.T) {
	err := New(CodeInvalidInput, "bad").WithDetail("a", 1).WithDetail("b", 2)
	details := err.Details().(map[string]any)
	if len(details) != 2 || details["a"] != 1 || details["b"] != 2 {
		t.Fatalf("unexpected details %#v", details)
	}
	if err.PublicMessage() != "invalid input" {
		t.Fatalf("unexpected public message %q", err.PublicMessage())
	}
}

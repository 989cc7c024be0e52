package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "bad", http.StatusBadRequest)
	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidConfig, err.Code)
	}
	if err.Message != "bad" {
		t.Errorf("expected message 'bad', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
}

func TestFilterNotFound(t *testing.T) {
	err := FilterNotFound("bogus")
	if err.Code != ErrCodeFilterNotFound {
		t.Errorf("expected FILTER_NOT_FOUND, got %s", err.Code)
	}
	if err.Details["filter"] != "bogus" {
		t.Errorf("expected filter=bogus, got %v", err.Details["filter"])
	}
	if !strings.Contains(err.Error(), "bogus") {
		t.Errorf("expected message to name the filter, got %q", err.Error())
	}
}

func TestInvalidOption_NoOptionKey(t *testing.T) {
	err := InvalidOption("tok", "", "missing '='")
	if _, ok := err.Details["option"]; ok {
		t.Error("expected no 'option' key in details when option is empty")
	}
}

func TestOutOfRange(t *testing.T) {
	err := OutOfRange("concat", "nr", "max=16")
	if err.Details["option"] != "nr" || err.Details["bound"] != "max=16" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestAllocationFailure(t *testing.T) {
	err := AllocationFailure("concat", 42)
	if err.Code != ErrCodeAllocationFailure {
		t.Errorf("expected ALLOCATION_FAILURE, got %s", err.Code)
	}
	if IsConfigError(err) {
		t.Error("allocation failure must not be a config error")
	}
}

func TestUnauthorized_DefaultReason(t *testing.T) {
	err := Unauthorized("")
	if err.Message != "Authentication required." {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestAppError_WithCause(t *testing.T) {
	cause := stderrors.New("root")
	err := Internal(nil).WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "cause: root") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := InvalidConfig("x").WithDetail("descriptor", "tok,")
	if err.Details["descriptor"] != "tok," {
		t.Errorf("expected detail to be set, got %v", err.Details)
	}
}

func TestIsConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"filter not found", FilterNotFound("x"), true},
		{"invalid option", InvalidOption("tok", "k", "r"), true},
		{"out of range", OutOfRange("tok", "flush_nr", "max=16"), true},
		{"invalid config", InvalidConfig("r"), true},
		{"wrapped", fmt.Errorf("build: %w", FilterNotFound("x")), true},
		{"invalid state", InvalidState("tok", "r"), false},
		{"plain", stderrors.New("x"), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsConfigError(tc.err); got != tc.want {
				t.Errorf("IsConfigError() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHasCode(t *testing.T) {
	err := fmt.Errorf("wrap: %w", OutOfRange("concat", "nr", "min=1"))
	if !HasCode(err, ErrCodeOutOfRange) {
		t.Error("expected OUT_OF_RANGE")
	}
	if HasCode(err, ErrCodeInvalidOption) {
		t.Error("did not expect INVALID_OPTION")
	}
	if HasCode(nil, ErrCodeOutOfRange) {
		t.Error("nil error has no code")
	}
}

func TestToResponse(t *testing.T) {
	resp := FilterNotFound("bogus").ToResponse()
	if resp.Error.Code != ErrCodeFilterNotFound {
		t.Errorf("expected FILTER_NOT_FOUND, got %s", resp.Error.Code)
	}
	if resp.Error.Details["filter"] != "bogus" {
		t.Errorf("expected details to carry over, got %v", resp.Error.Details)
	}
}

func TestAsAppError(t *testing.T) {
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error is not an AppError")
	}
	appErr, ok := AsAppError(fmt.Errorf("x: %w", InvalidInput("packets", "empty")))
	if !ok || appErr.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", appErr)
	}
	if !IsAppError(appErr) {
		t.Error("expected IsAppError")
	}
}

package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestUpstreamErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("chat: %w", Upstream("llm", "chatting with the LLM", cause))

	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is() = false, want true")
	}
	if got := ServiceOf(err); got != "llm" {
		t.Fatalf("ServiceOf() = %q, want llm", got)
	}
	want := "chat: An Exception Occurred while chatting with the LLM --> connection refused"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidationError(t *testing.T) {
	err := Invalid("history", "Order History is Empty")
	if !IsValidation(err) {
		t.Fatalf("IsValidation() = false, want true")
	}
	if ServiceOf(err) != "" {
		t.Fatalf("ServiceOf() on validation error should be empty")
	}
	if err.Error() != "history: Order History is Empty" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if IsValidation(errors.New("plain")) {
		t.Fatalf("IsValidation(plain) = true, want false")
	}
}

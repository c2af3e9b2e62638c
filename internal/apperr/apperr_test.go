package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"forbidden", Forbidden("you can only update your own claims"), KindForbidden},
		{"wrapped not found", fmt.Errorf("get bill: %w", NotFound("bill not found: %s", "b1")), KindNotFound},
		{"plain error", errors.New("disk full"), KindInternal},
		{"nil", nil, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorsIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("update: %w", Forbidden("nope"))
	if !errors.Is(err, ErrForbidden) {
		t.Error("expected errors.Is to match ErrForbidden")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("did not expect errors.Is to match ErrValidation")
	}
}

func TestErrorMessage(t *testing.T) {
	e := &Error{Kind: KindInternal, Message: "failed to save", Err: errors.New("locked")}
	if e.Error() != "failed to save: locked" {
		t.Errorf("Error() = %q", e.Error())
	}
	if !errors.Is(e, e.Err) {
		t.Error("expected Unwrap to expose the cause")
	}
}

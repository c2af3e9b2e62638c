package service

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/tabsplit/internal/apperr"
	"github.com/mmynk/tabsplit/internal/middleware"
	"github.com/mmynk/tabsplit/internal/storage"
)

// ErrorKindHeader carries the apperr.Kind of a failed call in the error
// metadata, so clients can branch on it without parsing messages.
const ErrorKindHeader = "Error-Kind"

var codes = map[apperr.Kind]connect.Code{
	apperr.KindValidation:      connect.CodeInvalidArgument,
	apperr.KindNotFound:        connect.CodeNotFound,
	apperr.KindNotAuthorized:   connect.CodePermissionDenied,
	apperr.KindForbidden:       connect.CodePermissionDenied,
	apperr.KindBadRequest:      connect.CodeInvalidArgument,
	apperr.KindUnauthenticated: connect.CodeUnauthenticated,
	apperr.KindConflict:        connect.CodeAlreadyExists,
}

// toConnectError converts a domain or storage error into a Connect error.
// Anything without a kind is logged and surfaced as a generic internal error.
func toConnectError(op string, err error) error {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal && errors.Is(err, storage.ErrNotFound) {
		kind = apperr.KindNotFound
	}

	code, ok := codes[kind]
	if !ok {
		slog.Error(op+" failed", "error", err)
		cerr := connect.NewError(connect.CodeInternal, errors.New("internal error"))
		cerr.Meta().Set(ErrorKindHeader, string(apperr.KindInternal))
		return cerr
	}

	cerr := connect.NewError(code, err)
	cerr.Meta().Set(ErrorKindHeader, string(kind))
	return cerr
}

// requireUser returns the authenticated user ID from the context.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", toConnectError("auth", apperr.Unauthenticated("authentication required"))
	}
	return userID, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateMessage runs struct tag validation and returns an apperr
// validation error naming the first failing field.
func validateMessage(msg any) error {
	err := validate.Struct(msg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.Validation("invalid %s: failed %q", fe.Namespace(), fe.Tag())
	}
	return apperr.Validation("invalid request: %v", err)
}

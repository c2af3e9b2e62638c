package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// errorKindHeader mirrors the error metadata key the services set.
const errorKindHeader = "Error-Kind"

// LoggingInterceptor returns a Connect interceptor that logs each finished RPC
// with its procedure, caller and duration. The level follows the outcome:
// connect errors other than CodeInternal are client errors and go to WARN
// with their code and Error-Kind; internal and non-connect errors go to
// ERROR; successful calls go to DEBUG only.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			// user_id and email are empty on public procedures.
			attrs := []any{
				"procedure", req.Spec().Procedure,
				"user_id", GetUserID(ctx),
				"email", GetEmail(ctx),
				"duration_ms", time.Since(start).Milliseconds(),
			}

			var connectErr *connect.Error
			switch {
			case err == nil:
				slog.DebugContext(ctx, "RPC ok", attrs...)
			case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal:
				slog.WarnContext(ctx, "RPC client error", append(attrs,
					"code", connectErr.Code().String(),
					"kind", connectErr.Meta().Get(errorKindHeader),
					"error", connectErr.Message(),
				)...)
			default:
				slog.ErrorContext(ctx, "RPC failed", append(attrs, "error", err)...)
			}

			return resp, err
		}
	}
}

package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/ports"
	"github.com/shaggymission/adoption-web/internal/pkg/metrics"
)

// User-facing failure texts shared by several pages.
const (
	ConnectionErrorMessage = "Connection error. Please try again."
	NetworkErrorMessage    = "Network error. Please try again."
	InFlightMessage        = "A request is already in progress"
)

// inFlight runs fn while holding the session's guard for op. The guard is
// released however fn ends, even when the request context is gone.
func inFlight(ctx context.Context, guard ports.SubmitGuard, log zerolog.Logger, sid, op string, fn func() error) error {
	ok, err := guard.Acquire(ctx, sid, op)
	if err != nil {
		// A broken guard must not lock users out.
		log.Warn().Err(err).Str("operation", op).Msg("submit guard unavailable")
		return fn()
	}
	if !ok {
		metrics.SubmitsRejectedTotal.WithLabelValues(op).Inc()
		return domain.ErrRequestInFlight
	}
	defer func() {
		if err := guard.Release(context.WithoutCancel(ctx), sid, op); err != nil {
			log.Warn().Err(err).Str("operation", op).Msg("submit guard release failed")
		}
	}()
	return fn()
}

// FailureMessage turns a failed call into the text shown on a form: the
// server's message when it sent one, the connection text for transport
// failures, else fallback.
func FailureMessage(err error, fallback string) string {
	return failureMessage(err, fallback, ConnectionErrorMessage)
}

func failureMessage(err error, fallback, connection string) string {
	var re *domain.RemoteError
	switch {
	case errors.Is(err, domain.ErrRequestInFlight):
		return InFlightMessage
	case errors.As(err, &re):
		if re.Message != "" {
			return re.Message
		}
		return fallback
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return connection
	default:
		return fallback
	}
}

// canceled reports whether the caller went away. Late results are then
// dropped without touching session state.
func canceled(ctx context.Context) bool {
	return ctx.Err() != nil
}

package gateway

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shaggymission/adoption-web/internal/core/domain"
)

// NoopDecisionSubmitter is the decision sink used while no backend accepts
// adoption decisions. The decision only exists in the admin's view state.
type NoopDecisionSubmitter struct {
	log zerolog.Logger
}

func NewNoopDecisionSubmitter(log zerolog.Logger) *NoopDecisionSubmitter {
	return &NoopDecisionSubmitter{log: log.With().Str("component", "decisions").Logger()}
}

func (n *NoopDecisionSubmitter) SubmitDecision(_ context.Context, d domain.AdoptionDecision) error {
	n.log.Info().
		Str("request_id", d.RequestID).
		Str("status", string(d.Status)).
		Str("decided_by", d.DecidedBy).
		Msg("adoption decision kept locally; no decision service configured")
	return nil
}

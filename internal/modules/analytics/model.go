// README: Search analytics types and outcome classification.
package analytics

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"vamu/internal/modules/inspiration"
)

// Outcome values stored with each event.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid_request"
	OutcomeAuth        = "provider_auth"
	OutcomeRateLimited = "rate_limited"
	OutcomeUnavailable = "provider_unavailable"
	OutcomeError       = "error"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 200
)

// SearchEvent is one recorded venue search.
type SearchEvent struct {
	ID          uuid.UUID `json:"id"`
	Query       string    `json:"query"`
	BiasApplied bool      `json:"bias_applied"`
	ResultCount int       `json:"result_count"`
	Outcome     string    `json:"outcome"`
	LatencyMs   int64     `json:"latency_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewSearchEvent stamps a new event with an id and the current time.
func NewSearchEvent(query string, biasApplied bool, resultCount int, err error, latency time.Duration) SearchEvent {
	return SearchEvent{
		ID:          uuid.New(),
		Query:       query,
		BiasApplied: biasApplied,
		ResultCount: resultCount,
		Outcome:     OutcomeFor(err),
		LatencyMs:   latency.Milliseconds(),
		CreatedAt:   time.Now().UTC(),
	}
}

// OutcomeFor classifies a pipeline error.
func OutcomeFor(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, inspiration.ErrInvalidRequest):
		return OutcomeInvalid
	case errors.Is(err, inspiration.ErrProviderAuth):
		return OutcomeAuth
	case errors.Is(err, inspiration.ErrProviderRateLimited):
		return OutcomeRateLimited
	case errors.Is(err, inspiration.ErrProviderUnavailable):
		return OutcomeUnavailable
	default:
		return OutcomeError
	}
}

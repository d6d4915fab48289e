// README: Inspiration pipeline; resolves location bias, builds the provider query, searches, normalizes.
package inspiration

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Provider is a places-search backend. Implementations must be safe for concurrent use
// and perform exactly one outbound call per Search.
type Provider interface {
	Search(ctx context.Context, q ProviderQuery) ([]RawVenueRecord, error)
	Capabilities() Capabilities
}

// Options configure a Service.
type Options struct {
	Defaults QueryDefaults
	// Timeout bounds the provider call. Zero means no extra bound beyond ctx.
	Timeout time.Duration
}

// Service runs the venue suggestion pipeline. It holds no per-request state.
type Service struct {
	provider Provider
	opts     Options
}

// NewService creates a Service around the given provider.
func NewService(provider Provider, opts Options) *Service {
	return &Service{provider: provider, opts: opts}
}

// Suggest resolves venues for a request. Any stage failure aborts the run and
// no partial result is returned.
func (s *Service) Suggest(ctx context.Context, req SearchRequest) (SuggestionList, error) {
	if err := req.Validate(); err != nil {
		return SuggestionList{}, err
	}

	radius := s.opts.Defaults.RadiusMeters
	if req.RadiusMeters != nil {
		radius = *req.RadiusMeters
	}
	bias := ResolveLocation(req.What, req.Location, radius)

	query, err := BuildQuery(req, bias, s.opts.Defaults, s.provider.Capabilities())
	if err != nil {
		return SuggestionList{}, err
	}

	logger := log.Ctx(ctx)
	logger.Debug().
		Str("text_query", query.Text).
		Bool("coordinates_supplied", req.Location != nil).
		Bool("bias_applied", query.Bias != nil).
		Int("max_results", query.MaxResults).
		Str("field_mask", FieldMaskVersion).
		Msg("searching places")

	callCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	records, err := s.provider.Search(callCtx, query)
	if err != nil {
		return SuggestionList{}, err
	}

	suggestions := Normalize(records, query.Deferred)
	logger.Info().
		Str("text_query", query.Text).
		Int("raw_results", len(records)).
		Int("total_count", len(suggestions)).
		Msg("venue suggestions resolved")

	return SuggestionList{
		Suggestions: suggestions,
		TotalCount:  len(suggestions),
		Query:       query.Text,
	}, nil
}

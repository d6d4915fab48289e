package wishlist

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"vamu/internal/ai"
)

// QuotaGuard is the allowance check made before each generation.
type QuotaGuard interface {
	Consume(ctx context.Context, clientID string) error
	Remaining(ctx context.Context, clientID string) (int, error)
}

// Service orchestrates quota checks and wishlist generation.
type Service struct {
	generator ai.WishlistGenerator
	quota     QuotaGuard
}

// NewService creates a Service. generator may be nil, in which case every call
// returns ErrNotConfigured. quota may be nil to disable the allowance check.
func NewService(generator ai.WishlistGenerator, quota QuotaGuard) *Service {
	return &Service{generator: generator, quota: quota}
}

// Enabled reports whether a generator is wired.
func (s *Service) Enabled() bool {
	return s != nil && s.generator != nil
}

// Suggest generates a wishlist for the event, charging one generation to the client.
func (s *Service) Suggest(ctx context.Context, req Request) (Suggestion, error) {
	if !s.Enabled() {
		return Suggestion{}, ErrNotConfigured
	}
	if err := req.validate(); err != nil {
		return Suggestion{}, err
	}
	maxItems := req.MaxItems
	if maxItems == 0 {
		maxItems = DefaultMaxItems
	}
	clientID := strings.TrimSpace(req.ClientID)
	if clientID == "" {
		clientID = AnonymousClient
	}

	if s.quota != nil {
		if err := s.quota.Consume(ctx, clientID); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("client_id", clientID).Msg("wishlist quota check failed")
			return Suggestion{}, err
		}
	}

	eventName := strings.TrimSpace(req.EventName)
	items, err := s.generator.GenerateWishlist(ctx, eventName, maxItems)
	if err != nil {
		return Suggestion{}, err
	}
	if len(items) > maxItems {
		items = items[:maxItems]
	}
	if items == nil {
		items = []string{}
	}
	out := Suggestion{EventName: eventName, Items: items, ItemCount: len(items)}
	if s.quota != nil {
		left, err := s.quota.Remaining(ctx, clientID)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("client_id", clientID).Msg("wishlist quota lookup failed")
		} else {
			out.Remaining = &left
		}
	}
	return out, nil
}

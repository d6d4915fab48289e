package ai

import (
	"context"
)

// WishlistGenerator produces the items a guest might need for an event.
// Implementations must be safe for concurrent use.
type WishlistGenerator interface {
	// GenerateWishlist returns at most maxItems item names for eventName.
	GenerateWishlist(ctx context.Context, eventName string, maxItems int) ([]string, error)
}

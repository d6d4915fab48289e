// README: Wishlist domain types, sentinels and request bounds.
package wishlist

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRequest marks an empty event name or out-of-range item count.
	ErrInvalidRequest = errors.New("invalid wishlist request")
	// ErrQuotaExceeded is returned when a client has used its monthly allowance.
	ErrQuotaExceeded = errors.New("wishlist quota exceeded")
	// ErrNotConfigured is returned when no generator is wired (no model key).
	ErrNotConfigured = errors.New("wishlist generation not configured")
)

const (
	// DefaultMaxItems applies when a request does not name a count.
	DefaultMaxItems = 10
	// MaxItemsLimit bounds a single request.
	MaxItemsLimit = 25
	// DefaultMonthlyQuota is the number of generations granted per client per month.
	DefaultMonthlyQuota = 100
	// AnonymousClient is the quota bucket for callers without a client id.
	AnonymousClient = "anonymous"
)

// Request is one wishlist generation.
type Request struct {
	ClientID  string
	EventName string
	// MaxItems of 0 selects DefaultMaxItems.
	MaxItems int
}

func (r Request) validate() error {
	if strings.TrimSpace(r.EventName) == "" {
		return fmt.Errorf("%w: event_name must not be empty", ErrInvalidRequest)
	}
	if r.MaxItems < 0 || r.MaxItems > MaxItemsLimit {
		return fmt.Errorf("%w: max_items must be between 1 and %d", ErrInvalidRequest, MaxItemsLimit)
	}
	return nil
}

// Suggestion is the generated wishlist for an event.
type Suggestion struct {
	EventName string   `json:"event_name"`
	Items     []string `json:"items"`
	ItemCount int      `json:"item_count"`
	// Remaining is the client's allowance left this month, omitted without a quota.
	Remaining *int `json:"remaining,omitempty"`
}

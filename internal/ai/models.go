package ai

import "errors"

// ErrGeneration covers every failure to obtain a usable answer from the model:
// transport errors, blocked or empty candidates, and unparsable JSON.
var ErrGeneration = errors.New("wishlist generation failed")

// wishlistResponse is the JSON document the model is instructed to return.
type wishlistResponse struct {
	Event string `json:"event"`

	// ItemsNeeded lists the suggested items, most important first.
	ItemsNeeded []string `json:"items_needed"`
}

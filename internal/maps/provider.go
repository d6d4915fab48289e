package maps

import (
	"fmt"

	"vamu/internal/config"
	"vamu/internal/modules/inspiration"
)

// NewProvider builds the places backend selected by configuration.
func NewProvider(cfg config.PlacesConfig) (inspiration.Provider, error) {
	switch cfg.Provider {
	case config.ProviderPlacesV1, "":
		return NewPlacesService(cfg.APIKey, cfg.BaseURL, cfg.Timeout), nil
	case config.ProviderMapsLegacy:
		// The legacy client has its own default host; a Places (New) base URL does not apply.
		return NewLegacyPlacesService(cfg.APIKey, "", cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown places provider %q", cfg.Provider)
	}
}

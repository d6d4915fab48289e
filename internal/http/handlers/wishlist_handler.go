// README: Wishlist handler (quota-guarded Gemini wishlist generation).
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vamu/internal/modules/wishlist"
)

// ClientIDHeader names the caller for quota accounting.
const ClientIDHeader = "X-Client-ID"

type WishlistHandler struct {
	wishlist *wishlist.Service
}

func NewWishlistHandler(svc *wishlist.Service) *WishlistHandler {
	return &WishlistHandler{wishlist: svc}
}

type wishlistReq struct {
	EventName string `json:"event_name"`
	MaxItems  *int   `json:"max_items"`
}

// Suggest handles POST /api/v1/inspiration/wishlist.
func (h *WishlistHandler) Suggest(c *gin.Context) {
	var body wishlistReq
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json", err.Error())
		return
	}
	req := wishlist.Request{
		ClientID:  strings.TrimSpace(c.GetHeader(ClientIDHeader)),
		EventName: body.EventName,
	}
	if body.MaxItems != nil {
		if *body.MaxItems < 1 {
			writeError(c, http.StatusBadRequest, "invalid request", "max_items must be positive")
			return
		}
		req.MaxItems = *body.MaxItems
	}

	suggestion, err := h.wishlist.Suggest(c.Request.Context(), req)
	if err != nil {
		writeWishlistError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, suggestion)
}

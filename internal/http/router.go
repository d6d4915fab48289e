// README: HTTP router registration.
package http

import (
	"github.com/gin-gonic/gin"

	"vamu/internal/http/handlers"
	"vamu/internal/http/middleware"
	"vamu/internal/modules/analytics"
	"vamu/internal/modules/inspiration"
	"vamu/internal/modules/wishlist"
)

type RouterDeps struct {
	Inspiration *inspiration.Service
	Wishlist    *wishlist.Service
	// Analytics may be nil.
	Analytics   *analytics.Recorder
	CORSOrigins []string
	Info        handlers.ServiceInfo
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery(), middleware.CORS(deps.CORSOrigins))

	system := handlers.NewSystemHandler(deps.Info)
	r.GET("/", system.Root)
	r.GET("/health", system.Health)

	api := r.Group("/api/v1/inspiration")

	inspirationHandler := handlers.NewInspirationHandler(deps.Inspiration, deps.Analytics)
	api.POST("/where", inspirationHandler.Where)
	api.GET("/searches", inspirationHandler.Searches)
	api.GET("/health", inspirationHandler.Health)

	wishlistHandler := handlers.NewWishlistHandler(deps.Wishlist)
	api.POST("/wishlist", wishlistHandler.Suggest)

	return r
}

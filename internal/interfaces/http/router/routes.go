package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tradeerp/backend/internal/interfaces/http/handler"
)

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	Comparison  *handler.ComparisonHandler
	PriceSearch *handler.PriceSearchHandler
	Merchandise *handler.MerchandiseHandler
	Health      *handler.HealthHandler
}

// RegisterAPI wires every domain group onto the router and mounts /health
// at the engine root
func RegisterAPI(engine *gin.Engine, h Handlers, opts ...RouterOption) *Router {
	r := NewRouter(engine, opts...)

	r.Register(NewDomainGroup("comparison", "/comparison").
		GET("/purchase-price", h.Comparison.PurchasePrice).
		POST("/full", h.Comparison.Full).
		POST("/calculate", h.Comparison.Calculate))

	r.Register(NewDomainGroup("price-search", "/price-search").
		POST("/history", h.PriceSearch.History))

	r.Register(NewDomainGroup("merchandise", "/merchandise").
		GET("/search", h.Merchandise.Search).
		GET("/:serialNumber", h.Merchandise.GetBySerialNumber).
		GET("/:serialNumber/tax-info", h.Merchandise.TaxInfo))

	engine.GET("/health", h.Health.Health)
	r.Setup()
	return r
}

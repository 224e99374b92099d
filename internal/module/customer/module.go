package customer

import "github.com/gin-gonic/gin"

// CustomerModule implements the app.Module interface for the customer domain.
type CustomerModule struct {
	handler *CustomerHandler
}

// NewModule creates a new CustomerModule with the given handler.
// Panics if h is nil.
func NewModule(h *CustomerHandler) *CustomerModule {
	if h == nil {
		panic("customer.NewModule: handler must not be nil")
	}
	return &CustomerModule{handler: h}
}

// RegisterRoutes registers customer API routes.
func (m *CustomerModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/customers", m.handler.List)
	api.GET("/customers/:id", m.handler.Get)
}

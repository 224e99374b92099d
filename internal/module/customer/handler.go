package customer

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/customer-directory/internal/domain"
	"github.com/simp-lee/customer-directory/internal/pkg"
)

// CustomerHandler handles REST API requests for the customer directory.
type CustomerHandler struct {
	svc domain.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler with the given service.
func NewCustomerHandler(svc domain.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// List handles GET /api/v1/customers.
func (h *CustomerHandler) List(c *gin.Context) {
	var filters domain.CustomerFilters
	if !pkg.BindQuery(c, &filters) {
		return
	}

	page, err := h.svc.ListCustomers(parseListQuery(c, filters))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, page)
}

// Get handles GET /api/v1/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	cust, err := h.svc.GetCustomer(c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, cust)
}

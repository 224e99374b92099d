package customer

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/customer-directory/internal/domain"
	"github.com/simp-lee/customer-directory/internal/pkg"
)

// parseListQuery extracts filter and pagination inputs from request query
// parameters. Numeric inputs are floored and coerced; a malformed page or
// pageSize is never a request error, it simply falls back to the defaults
// inside the paginator. Filter strings are taken verbatim.
func parseListQuery(c *gin.Context, filters domain.CustomerFilters) domain.ListQuery {
	return domain.ListQuery{
		Page:     pkg.ParseIntFloor(c.Query("page")),
		PageSize: pkg.ParseIntFloor(c.Query("pageSize")),
		Filters:  filters,
	}
}

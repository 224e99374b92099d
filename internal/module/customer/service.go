package customer

import (
	"github.com/simp-lee/customer-directory/internal/domain"
	"github.com/simp-lee/customer-directory/internal/pkg"
)

// customerService implements domain.CustomerService.
type customerService struct {
	repo            domain.CustomerRepository
	defaultPageSize int
}

// NewCustomerService creates a CustomerService over the given repository.
// defaultPageSize is used when a request carries no usable pageSize; values
// outside [1, 100] fall back to the package default.
func NewCustomerService(repo domain.CustomerRepository, defaultPageSize int) domain.CustomerService {
	return &customerService{repo: repo, defaultPageSize: defaultPageSize}
}

// ListCustomers runs one lookup: validate the filters, reject early on
// invalid input, narrow the snapshot, paginate the working set, and shape
// the response. Invalid filters never touch the data source.
func (s *customerService) ListCustomers(q domain.ListQuery) (*domain.CustomerPage, error) {
	if errs := ValidateFilters(q.Filters); len(errs) > 0 {
		return nil, domain.NewValidationError(errs)
	}

	matched := ApplyFilters(s.repo.GetAll(), q.Filters)
	result := pkg.Paginate(matched, q.Page, q.PageSize, s.defaultPageSize)

	page := &domain.CustomerPage{
		Items:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	}
	if q.Filters.Active() {
		filters := q.Filters
		page.Filters = &filters
	}
	return page, nil
}

// GetCustomer looks up a single customer by id, ignoring case.
func (s *customerService) GetCustomer(id string) (*domain.Customer, error) {
	c, ok := s.repo.GetByID(id)
	if !ok {
		return nil, domain.NewAppError(domain.CodeNotFound, "Customer not found", nil)
	}
	return c, nil
}

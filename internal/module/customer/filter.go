package customer

import (
	"strings"

	"github.com/simp-lee/customer-directory/internal/domain"
	"github.com/simp-lee/customer-directory/internal/pkg"
)

// errRegistrationDateFormat is the only possible filter validation message.
// ID, full name, and email are used verbatim as substrings and never fail.
const errRegistrationDateFormat = "Registration date must be in DD/MM/YYYY format"

// ValidateFilters checks filter criteria and returns one message per
// violated rule. An empty result means the criteria are valid.
func ValidateFilters(f domain.CustomerFilters) []string {
	var errs []string
	if f.RegistrationDate != "" && !pkg.IsDisplayDate(f.RegistrationDate) {
		errs = append(errs, errRegistrationDateFormat)
	}
	return errs
}

// ApplyFilters narrows customers to the records matching every active
// criterion. Criteria apply sequentially (id, full name, email, then
// registration date), each against the already-narrowed set, so the result
// is the intersection. An empty criterion passes all records through.
func ApplyFilters(customers []domain.Customer, f domain.CustomerFilters) []domain.Customer {
	matched := customers

	if f.ID != "" {
		matched = filterBy(matched, func(c domain.Customer) bool {
			return containsFold(c.ID, f.ID)
		})
	}

	if f.FullName != "" {
		matched = filterBy(matched, func(c domain.Customer) bool {
			return containsFold(c.FullName, f.FullName)
		})
	}

	if f.Email != "" {
		matched = filterBy(matched, func(c domain.Customer) bool {
			return containsFold(c.Email, f.Email)
		})
	}

	if f.RegistrationDate != "" {
		canonical, ok := pkg.ToCanonicalDate(f.RegistrationDate)
		if !ok {
			// Callers validate first; an unparseable date here matches nothing.
			return []domain.Customer{}
		}
		matched = filterBy(matched, func(c domain.Customer) bool {
			return c.RegistrationDate == canonical
		})
	}

	return matched
}

// filterBy returns the records satisfying keep, preserving order.
func filterBy(customers []domain.Customer, keep func(domain.Customer) bool) []domain.Customer {
	matched := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if keep(c) {
			matched = append(matched, c)
		}
	}
	return matched
}

// containsFold reports whether substr occurs in s, ignoring case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

package domain

// Customer is one record of the directory. Records are loaded once at
// process start and never mutated afterwards.
type Customer struct {
	ID               string `gorm:"column:id;primaryKey" json:"id" validate:"required"`
	FullName         string `gorm:"column:full_name" json:"fullName" validate:"required"`
	Email            string `gorm:"column:email" json:"email" validate:"required"`
	RegistrationDate string `gorm:"column:registration_date" json:"registrationDate" validate:"required"`
}

// TableName maps Customer to the customers table for the database loaders.
func (Customer) TableName() string {
	return "customers"
}

// CustomerFilters is a per-request filter specification. An empty field is
// an absent criterion. ID, FullName, and Email are case-insensitive
// substring matches; RegistrationDate is a display-form date compared for
// exact equality after conversion to canonical form.
type CustomerFilters struct {
	ID               string `form:"id" json:"id,omitempty"`
	FullName         string `form:"fullName" json:"fullName,omitempty"`
	Email            string `form:"email" json:"email,omitempty"`
	RegistrationDate string `form:"registrationDate" json:"registrationDate,omitempty"`
}

// Active reports whether any criterion is set.
func (f CustomerFilters) Active() bool {
	return f.ID != "" || f.FullName != "" || f.Email != "" || f.RegistrationDate != ""
}

// ListQuery holds the untrusted inputs of one list request after numeric
// coercion. Zero Page/PageSize mean "absent", resolved by the paginator.
type ListQuery struct {
	Page     int
	PageSize int
	Filters  CustomerFilters
}

// CustomerRepository is the read-only data provider for the customer
// snapshot. Every call observes the same records in the same stable order
// for the whole process lifetime.
type CustomerRepository interface {
	GetAll() []Customer
	GetByID(id string) (*Customer, bool)
	Count() int
	Exists(id string) bool
}

// CustomerService is the business logic interface for directory lookups.
type CustomerService interface {
	ListCustomers(q ListQuery) (*CustomerPage, error)
	GetCustomer(id string) (*Customer, error)
}

// CustomerPage is the public shape of a list response. Filters echoes the
// active criteria and is omitted when none were applied.
type CustomerPage struct {
	Items      []Customer       `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalPages int              `json:"totalPages"`
	Filters    *CustomerFilters `json:"filters,omitempty"`
}

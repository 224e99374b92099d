package customer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/simp-lee/customer-directory/internal/domain"
)

var snapshotValidate = validator.New()

// snapshotRepository implements domain.CustomerRepository over an immutable
// in-memory snapshot. The snapshot is built once at startup; every call
// observes the same records in the same order, so no locking is needed.
type snapshotRepository struct {
	customers []domain.Customer
	byID      map[string]int
}

// NewSnapshotRepository creates a repository over the given records,
// preserving their order.
func NewSnapshotRepository(customers []domain.Customer) domain.CustomerRepository {
	byID := make(map[string]int, len(customers))
	for i, c := range customers {
		byID[strings.ToLower(c.ID)] = i
	}
	return &snapshotRepository{customers: customers, byID: byID}
}

// NewFileRepository loads the snapshot from a JSON file. The file holds
// either a bare array of customers or an object with a "customers" field.
func NewFileRepository(path string) (domain.CustomerRepository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read customer data file %q: %w", path, err)
	}

	customers, err := decodeCustomers(data)
	if err != nil {
		return nil, fmt.Errorf("decode customer data file %q: %w", path, err)
	}
	if err := validateSnapshot(customers); err != nil {
		return nil, fmt.Errorf("invalid customer data file %q: %w", path, err)
	}

	return NewSnapshotRepository(customers), nil
}

// NewDatabaseRepository loads the snapshot from the customers table,
// ordered by id so every process start observes the same stable order.
// The connection is only needed for this one query; the caller closes it.
func NewDatabaseRepository(db *gorm.DB) (domain.CustomerRepository, error) {
	var customers []domain.Customer
	if err := db.Order("id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("load customer snapshot: %w", err)
	}
	if err := validateSnapshot(customers); err != nil {
		return nil, fmt.Errorf("invalid customer snapshot: %w", err)
	}
	return NewSnapshotRepository(customers), nil
}

// GetAll returns the full snapshot. Callers must treat it as read-only.
func (r *snapshotRepository) GetAll() []domain.Customer {
	return r.customers
}

// GetByID looks up a customer by id, ignoring case.
func (r *snapshotRepository) GetByID(id string) (*domain.Customer, bool) {
	i, ok := r.byID[strings.ToLower(id)]
	if !ok {
		return nil, false
	}
	c := r.customers[i]
	return &c, true
}

// Count returns the number of records in the snapshot.
func (r *snapshotRepository) Count() int {
	return len(r.customers)
}

// Exists reports whether a customer with the given id is in the snapshot.
func (r *snapshotRepository) Exists(id string) bool {
	_, ok := r.byID[strings.ToLower(id)]
	return ok
}

// validateSnapshot rejects snapshots with incomplete records. The snapshot
// is immutable for the process lifetime, so a bad record is a deployment
// problem surfaced at startup rather than per request.
func validateSnapshot(customers []domain.Customer) error {
	for i, c := range customers {
		if err := snapshotValidate.Struct(c); err != nil {
			return fmt.Errorf("record %d (id %q): %w", i, c.ID, err)
		}
	}
	return nil
}

// decodeCustomers accepts both snapshot file layouts.
func decodeCustomers(data []byte) ([]domain.Customer, error) {
	var customers []domain.Customer
	if err := json.Unmarshal(data, &customers); err == nil {
		return customers, nil
	}

	var wrapped struct {
		Customers []domain.Customer `json:"customers"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Customers, nil
}

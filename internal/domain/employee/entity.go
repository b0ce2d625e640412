package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntityType identifies which kind of employer an employee belongs to.
// Company and business references are mutually exclusive.
type EntityType string

const (
	EntityTypeCompany  EntityType = "company"
	EntityTypeBusiness EntityType = "business"
)

// Valid reports whether t is a recognized entity type.
func (t EntityType) Valid() bool {
	return t == EntityTypeCompany || t == EntityTypeBusiness
}

// Employee is one member of an employer's workforce.
//
// IsActive and the benefit flags are tri-state pointers: nil means the
// flag was never recorded, which is a reportable data-integrity condition
// and must never be coerced to true or false.
type Employee struct {
	ID          string
	AccountID   string
	EntityID    string
	EntityType  EntityType
	FirstName   string
	LastName    string
	Email       string
	GrossSalary decimal.Decimal // monthly gross, Naira

	IsActive   *bool
	HasPension *bool
	HasNHF     *bool
	HasNHIS    *bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountBreakdown partitions an entity's workforce by activity status.
// UndefinedStatus counts employees whose IsActive flag was never set.
type CountBreakdown struct {
	Total           int `json:"total"`
	Active          int `json:"active"`
	Inactive        int `json:"inactive"`
	UndefinedStatus int `json:"undefined_status"`
}

// Breakdown partitions employees by their tri-state IsActive flag.
func Breakdown(employees []Employee) CountBreakdown {
	b := CountBreakdown{Total: len(employees)}
	for _, e := range employees {
		switch {
		case e.IsActive == nil:
			b.UndefinedStatus++
		case *e.IsActive:
			b.Active++
		default:
			b.Inactive++
		}
	}
	return b
}

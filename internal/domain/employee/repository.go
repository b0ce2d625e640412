package employee

import "context"

// EmployeeRepository defines data access for employees. All methods take
// the employer entity reference explicitly; there is no implicit "current
// entity" state anywhere in the engine.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListByEntity(ctx context.Context, entityID string, entityType EntityType) ([]Employee, error)
}

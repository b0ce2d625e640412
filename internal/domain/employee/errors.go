package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidEntityType = errors.New("entity type must be 'company' or 'business'")
)

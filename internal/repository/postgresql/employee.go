package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/employee"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, account_id, entity_id, entity_type, first_name, last_name, email,
			   gross_salary, is_active, has_pension, has_nhf, has_nhis,
			   created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.AccountID, &e.EntityID, &e.EntityType, &e.FirstName, &e.LastName, &e.Email,
		&e.GrossSalary, &e.IsActive, &e.HasPension, &e.HasNHF, &e.HasNHIS,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) ListByEntity(ctx context.Context, entityID string, entityType employee.EntityType) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, account_id, entity_id, entity_type, first_name, last_name, email,
			   gross_salary, is_active, has_pension, has_nhf, has_nhis,
			   created_at, updated_at
		FROM employees
		WHERE entity_id = $1 AND entity_type = $2
		ORDER BY last_name, first_name
	`

	rows, err := q.Query(ctx, query, entityID, entityType)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(
			&e.ID, &e.AccountID, &e.EntityID, &e.EntityType, &e.FirstName, &e.LastName, &e.Email,
			&e.GrossSalary, &e.IsActive, &e.HasPension, &e.HasNHF, &e.HasNHIS,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return employees, nil
}

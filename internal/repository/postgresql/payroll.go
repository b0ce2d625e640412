package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taxpadi/taxpadi-backend-go/internal/domain/employee"
	"github.com/taxpadi/taxpadi-backend-go/internal/domain/payroll"
	"github.com/taxpadi/taxpadi-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== RECORDS ==========

func (r *payrollRepository) UpsertRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			employee_id, entity_id, entity_type, period_month, period_year,
			gross_salary, employee_pension_contribution, employer_pension_contribution,
			nhf_contribution, nhis_contribution, cra, taxable_income, paye, net_salary,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (employee_id, period_month, period_year) DO UPDATE SET
			gross_salary = EXCLUDED.gross_salary,
			employee_pension_contribution = EXCLUDED.employee_pension_contribution,
			employer_pension_contribution = EXCLUDED.employer_pension_contribution,
			nhf_contribution = EXCLUDED.nhf_contribution,
			nhis_contribution = EXCLUDED.nhis_contribution,
			cra = EXCLUDED.cra,
			taxable_income = EXCLUDED.taxable_income,
			paye = EXCLUDED.paye,
			net_salary = EXCLUDED.net_salary,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, employee_id, entity_id, entity_type, period_month, period_year,
			gross_salary, employee_pension_contribution, employer_pension_contribution,
			nhf_contribution, nhis_contribution, cra, taxable_income, paye, net_salary,
			status, created_at, updated_at
	`

	var saved payroll.PayrollRecord
	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.EntityID, record.EntityType, record.PeriodMonth, record.PeriodYear,
		record.GrossSalary, record.EmployeePensionContrib, record.EmployerPensionContrib,
		record.NHFContribution, record.NHISContribution, record.CRA, record.TaxableIncome, record.PAYE, record.NetSalary,
		record.Status,
	).Scan(
		&saved.ID, &saved.EmployeeID, &saved.EntityID, &saved.EntityType, &saved.PeriodMonth, &saved.PeriodYear,
		&saved.GrossSalary, &saved.EmployeePensionContrib, &saved.EmployerPensionContrib,
		&saved.NHFContribution, &saved.NHISContribution, &saved.CRA, &saved.TaxableIncome, &saved.PAYE, &saved.NetSalary,
		&saved.Status, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to upsert payroll record: %w", err)
	}

	saved.EmployeeName = record.EmployeeName
	return saved, nil
}

func (r *payrollRepository) GetRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pr.id, pr.employee_id, pr.entity_id, pr.entity_type, pr.period_month, pr.period_year,
			   pr.gross_salary, pr.employee_pension_contribution, pr.employer_pension_contribution,
			   pr.nhf_contribution, pr.nhis_contribution, pr.cra, pr.taxable_income, pr.paye, pr.net_salary,
			   pr.status, pr.created_at, pr.updated_at,
			   e.first_name || ' ' || e.last_name AS employee_name
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3
	`

	var rec payroll.PayrollRecord
	err := q.QueryRow(ctx, query, employeeID, month, year).Scan(
		&rec.ID, &rec.EmployeeID, &rec.EntityID, &rec.EntityType, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.GrossSalary, &rec.EmployeePensionContrib, &rec.EmployerPensionContrib,
		&rec.NHFContribution, &rec.NHISContribution, &rec.CRA, &rec.TaxableIncome, &rec.PAYE, &rec.NetSalary,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) DeleteRecordsByPeriodExcept(ctx context.Context, entityID string, entityType employee.EntityType, month, year int, keepEmployeeIDs []string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM payroll_records
		WHERE entity_id = $1 AND entity_type = $2 AND period_month = $3 AND period_year = $4
		  AND NOT (employee_id = ANY($5))
	`

	tag, err := q.Exec(ctx, query, entityID, entityType, month, year, keepEmployeeIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to delete superseded payroll records: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *payrollRepository) ListRecordsByPeriod(ctx context.Context, entityID string, entityType employee.EntityType, month, year int) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pr.id, pr.employee_id, pr.entity_id, pr.entity_type, pr.period_month, pr.period_year,
			   pr.gross_salary, pr.employee_pension_contribution, pr.employer_pension_contribution,
			   pr.nhf_contribution, pr.nhis_contribution, pr.cra, pr.taxable_income, pr.paye, pr.net_salary,
			   pr.status, pr.created_at, pr.updated_at,
			   e.first_name || ' ' || e.last_name AS employee_name
		FROM payroll_records pr
		JOIN employees e ON e.id = pr.employee_id
		WHERE pr.entity_id = $1 AND pr.entity_type = $2 AND pr.period_month = $3 AND pr.period_year = $4
		ORDER BY e.last_name, e.first_name
	`

	rows, err := q.Query(ctx, query, entityID, entityType, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		var rec payroll.PayrollRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.EntityID, &rec.EntityType, &rec.PeriodMonth, &rec.PeriodYear,
			&rec.GrossSalary, &rec.EmployeePensionContrib, &rec.EmployerPensionContrib,
			&rec.NHFContribution, &rec.NHISContribution, &rec.CRA, &rec.TaxableIncome, &rec.PAYE, &rec.NetSalary,
			&rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payroll records: %w", err)
	}

	return records, nil
}

// ========== SCHEDULES ==========

func (r *payrollRepository) UpsertSchedule(ctx context.Context, schedule payroll.PayrollSchedule) (payroll.PayrollSchedule, error) {
	q := GetQuerier(ctx, r.db)

	// The unique index on (entity_id, entity_type, period_month,
	// period_year) makes concurrent generations converge on one row.
	query := `
		INSERT INTO payroll_schedules (
			entity_id, entity_type, period_month, period_year,
			total_employees, total_gross_salary, total_employee_pension, total_employer_pension,
			total_nhf, total_nhis, total_cra, total_taxable_income, total_paye, total_net_salary,
			status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (entity_id, entity_type, period_month, period_year) DO UPDATE SET
			total_employees = EXCLUDED.total_employees,
			total_gross_salary = EXCLUDED.total_gross_salary,
			total_employee_pension = EXCLUDED.total_employee_pension,
			total_employer_pension = EXCLUDED.total_employer_pension,
			total_nhf = EXCLUDED.total_nhf,
			total_nhis = EXCLUDED.total_nhis,
			total_cra = EXCLUDED.total_cra,
			total_taxable_income = EXCLUDED.total_taxable_income,
			total_paye = EXCLUDED.total_paye,
			total_net_salary = EXCLUDED.total_net_salary,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, entity_id, entity_type, period_month, period_year,
			total_employees, total_gross_salary, total_employee_pension, total_employer_pension,
			total_nhf, total_nhis, total_cra, total_taxable_income, total_paye, total_net_salary,
			status, created_at, updated_at
	`

	var saved payroll.PayrollSchedule
	err := q.QueryRow(ctx, query,
		schedule.EntityID, schedule.EntityType, schedule.PeriodMonth, schedule.PeriodYear,
		schedule.TotalEmployees, schedule.TotalGrossSalary, schedule.TotalEmployeePension, schedule.TotalEmployerPension,
		schedule.TotalNHF, schedule.TotalNHIS, schedule.TotalCRA, schedule.TotalTaxableIncome, schedule.TotalPAYE, schedule.TotalNetSalary,
		schedule.Status,
	).Scan(
		&saved.ID, &saved.EntityID, &saved.EntityType, &saved.PeriodMonth, &saved.PeriodYear,
		&saved.TotalEmployees, &saved.TotalGrossSalary, &saved.TotalEmployeePension, &saved.TotalEmployerPension,
		&saved.TotalNHF, &saved.TotalNHIS, &saved.TotalCRA, &saved.TotalTaxableIncome, &saved.TotalPAYE, &saved.TotalNetSalary,
		&saved.Status, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollSchedule{}, fmt.Errorf("failed to upsert payroll schedule: %w", err)
	}

	return saved, nil
}

func (r *payrollRepository) GetScheduleByID(ctx context.Context, id string) (payroll.PayrollSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := scheduleSelect + ` WHERE id = $1`

	var s payroll.PayrollSchedule
	err := scanSchedule(q.QueryRow(ctx, query, id), &s)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollSchedule{}, payroll.ErrScheduleNotFound
		}
		return payroll.PayrollSchedule{}, fmt.Errorf("failed to get payroll schedule: %w", err)
	}
	return s, nil
}

func (r *payrollRepository) GetScheduleByPeriod(ctx context.Context, entityID string, entityType employee.EntityType, month, year int) (payroll.PayrollSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := scheduleSelect + ` WHERE entity_id = $1 AND entity_type = $2 AND period_month = $3 AND period_year = $4`

	var s payroll.PayrollSchedule
	err := scanSchedule(q.QueryRow(ctx, query, entityID, entityType, month, year), &s)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollSchedule{}, payroll.ErrScheduleNotFound
		}
		return payroll.PayrollSchedule{}, fmt.Errorf("failed to get payroll schedule: %w", err)
	}
	return s, nil
}

func (r *payrollRepository) UpdateScheduleStatus(ctx context.Context, id string, status payroll.ScheduleStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE payroll_schedules SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update schedule status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrScheduleNotFound
	}
	return nil
}

const scheduleSelect = `
	SELECT id, entity_id, entity_type, period_month, period_year,
		   total_employees, total_gross_salary, total_employee_pension, total_employer_pension,
		   total_nhf, total_nhis, total_cra, total_taxable_income, total_paye, total_net_salary,
		   status, created_at, updated_at
	FROM payroll_schedules`

func scanSchedule(row pgx.Row, s *payroll.PayrollSchedule) error {
	return row.Scan(
		&s.ID, &s.EntityID, &s.EntityType, &s.PeriodMonth, &s.PeriodYear,
		&s.TotalEmployees, &s.TotalGrossSalary, &s.TotalEmployeePension, &s.TotalEmployerPension,
		&s.TotalNHF, &s.TotalNHIS, &s.TotalCRA, &s.TotalTaxableIncome, &s.TotalPAYE, &s.TotalNetSalary,
		&s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
}

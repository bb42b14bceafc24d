package pgsql

import (
	"context"
	"errors"

	"github.com/atlaspos/pos-backend/internal/apperrors"
	"github.com/atlaspos/pos-backend/internal/core/domain"
	portsrepo "github.com/atlaspos/pos-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepository {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EmployeeRepository = (*PgxEmployeeRepository)(nil)

var employeeSelectQuery = `
SELECT
	e.employee_id, e.tenant_id, e.branch_id, e.full_name, e.email, e.phone,
	e.role, e.hourly_rate, e.pin, e.qr_token, e.is_active,
	e.created_at, e.last_updated_at
FROM employees e
`

func (r *PgxEmployeeRepository) getEmployees(ctx context.Context, filterQuery string, args ...any) ([]domain.Employee, error) {
	rows, err := r.Pool.Query(ctx, employeeSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query employees", err)
	}
	defer rows.Close()
	employees, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Employee])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Employee{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect employee rows", err)
	}
	return employees, nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, tenantID, employeeID string) (*domain.Employee, error) {
	employees, err := r.getEmployees(ctx, `WHERE e.tenant_id = $1 AND e.employee_id = $2`, tenantID, employeeID)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &employees[0], nil
}

func (r *PgxEmployeeRepository) SaveEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		INSERT INTO employees (
			employee_id, tenant_id, branch_id, full_name, email, phone,
			role, hourly_rate, pin, qr_token, is_active, created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		employee.EmployeeID, employee.TenantID, employee.BranchID,
		employee.FullName, employee.Email, employee.Phone, employee.Role,
		employee.HourlyRate, employee.PIN, employee.QRToken, employee.IsActive,
		employee.CreatedAt, employee.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewConflictError("employee ID " + employee.EmployeeID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save employee "+employee.EmployeeID, err)
	}
	return nil
}

func (r *PgxEmployeeRepository) UpdateEmployee(ctx context.Context, employee domain.Employee) error {
	query := `
		UPDATE employees SET
			full_name = $2, email = $3, phone = $4, role = $5, hourly_rate = $6,
			pin = $7, qr_token = $8, is_active = $9, branch_id = $10,
			last_updated_at = $11
		WHERE employee_id = $1 AND tenant_id = $12;
	`
	tag, err := r.Pool.Exec(ctx, query,
		employee.EmployeeID, employee.FullName, employee.Email, employee.Phone,
		employee.Role, employee.HourlyRate, employee.PIN, employee.QRToken,
		employee.IsActive, employee.BranchID, employee.LastUpdatedAt,
		employee.TenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update employee "+employee.EmployeeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxEmployeeRepository) ListEmployeesByTenant(ctx context.Context, tenantID string) ([]domain.Employee, error) {
	return r.getEmployees(ctx, `WHERE e.tenant_id = $1 ORDER BY e.full_name`, tenantID)
}

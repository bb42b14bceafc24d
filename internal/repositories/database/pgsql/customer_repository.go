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

type PgxCustomerRepository struct {
	BaseRepository
}

func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepository = (*PgxCustomerRepository)(nil)

var customerSelectQuery = `
SELECT
	c.account_id, c.tenant_id, c.branch_id, c.customer_name, c.account_number,
	c.email, c.phone, c.balance, c.credit_limit, c.status, c.is_active,
	c.created_at, c.last_updated_at
FROM customer_accounts c
`

func (r *PgxCustomerRepository) getCustomers(ctx context.Context, filterQuery string, args ...any) ([]domain.CustomerAccount, error) {
	rows, err := r.Pool.Query(ctx, customerSelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customer accounts", err)
	}
	defer rows.Close()
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.CustomerAccount])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.CustomerAccount{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect customer account rows", err)
	}
	return accounts, nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, tenantID, accountID string) (*domain.CustomerAccount, error) {
	accounts, err := r.getCustomers(ctx, `WHERE c.tenant_id = $1 AND c.account_id = $2`, tenantID, accountID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &accounts[0], nil
}

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, account domain.CustomerAccount) error {
	query := `
		INSERT INTO customer_accounts (
			account_id, tenant_id, branch_id, customer_name, account_number,
			email, phone, balance, credit_limit, status, is_active,
			created_at, last_updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.TenantID, account.BranchID,
		account.CustomerName, account.AccountNumber, account.Email,
		account.Phone, account.Balance, account.CreditLimit, account.Status,
		account.IsActive, account.CreatedAt, account.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "customer_accounts_account_number_key" {
				return apperrors.NewConflictError("account number " + account.AccountNumber + " already exists")
			}
			return apperrors.NewConflictError("customer account ID " + account.AccountID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save customer account "+account.AccountID, err)
	}
	return nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, account domain.CustomerAccount) error {
	query := `
		UPDATE customer_accounts SET
			customer_name = $2, email = $3, phone = $4, balance = $5,
			credit_limit = $6, status = $7, is_active = $8, branch_id = $9,
			last_updated_at = $10
		WHERE account_id = $1 AND tenant_id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID, account.CustomerName, account.Email, account.Phone,
		account.Balance, account.CreditLimit, account.Status, account.IsActive,
		account.BranchID, account.LastUpdatedAt, account.TenantID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update customer account "+account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxCustomerRepository) ListCustomersByTenant(ctx context.Context, tenantID string) ([]domain.CustomerAccount, error) {
	return r.getCustomers(ctx, `WHERE c.tenant_id = $1 ORDER BY c.customer_name`, tenantID)
}

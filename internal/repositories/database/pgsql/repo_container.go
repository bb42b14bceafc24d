package pgsql

import (
	portsrepo "github.com/atlaspos/pos-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx-backed repository onto one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		BranchRepo:       newPgxBranchRepository(pool),
		CategoryRepo:     newPgxCategoryRepository(pool),
		ProductRepo:      newPgxProductRepository(pool),
		EmployeeRepo:     newPgxEmployeeRepository(pool),
		CustomerRepo:     newPgxCustomerRepository(pool),
		MenuItemRepo:     newPgxMenuItemRepository(pool),
		SaleRepo:         newPgxSaleRepository(pool),
		TableRepo:        newPgxTableRepository(pool),
		CashRegisterRepo: newPgxCashRegisterRepository(pool),
		SettingsRepo:     newPgxSettingsRepository(pool),
	}
}

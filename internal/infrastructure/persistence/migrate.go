package persistence

import (
	"github.com/tradeops/backend/internal/infrastructure/persistence/models"
)

// Migrate creates or updates all tables. Order matters for the child tables
// with foreign keys.
func (d *Database) Migrate() error {
	return d.DB.AutoMigrate(
		&models.NumberAllocationModel{},
		&models.PrincipalModel{},
		&models.CustomerModel{},
		&models.SupplierModel{},
		&models.ReferenceRateModel{},
		&models.QuotationModel{},
		&models.ExpenseRequestModel{},
		&models.ApprovalSlotModel{},
		&models.WorkflowModel{},
		&models.WeeklyReportModel{},
		&models.AccessGrantModel{},
	)
}

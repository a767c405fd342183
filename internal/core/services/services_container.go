package services

import (
	portsrepo "github.com/zenerp/erp_backend/internal/core/ports/repositories"
	portssvc "github.com/zenerp/erp_backend/internal/core/ports/services"
	"github.com/zenerp/erp_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since the posting paths depend on it.
	container.Account = NewAccountService(repos.AccountRepo)

	container.Journal = NewJournalService(repos.JournalRepo, container.Account)
	container.Invoice = NewInvoiceService(
		repos.InvoiceRepo,
		repos.PaymentRepo,
		container.Account,
		cfg.BankAccountName,
		cfg.SalesAccountName,
		cfg.ReceivablesName,
	)
	container.Expense = NewExpenseService(repos.ExpenseRepo)
	container.Tax = NewTaxService(repos.TaxRepo, repos.InvoiceRepo, repos.ExpenseRepo)
	container.Payroll = NewPayrollService(repos.PayrollRepo, repos.EmployeeRepo, repos.AttendanceRepo)
	container.Employee = NewEmployeeService(repos.EmployeeRepo)
	container.Attendance = NewAttendanceService(repos.AttendanceRepo, repos.EmployeeRepo)
	container.User = NewUserService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	return container
}

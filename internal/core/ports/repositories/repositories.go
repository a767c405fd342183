package repositories

// RepositoryProvider bundles all repository implementations for injection into
// the service container.
type RepositoryProvider struct {
	AccountRepo    AccountRepositoryFacade
	JournalRepo    JournalRepositoryFacade
	InvoiceRepo    InvoiceRepositoryFacade
	PaymentRepo    PaymentRepositoryFacade
	ExpenseRepo    ExpenseRepositoryFacade
	TaxRepo        TaxRepositoryFacade
	PayrollRepo    PayrollRepositoryFacade
	EmployeeRepo   EmployeeRepositoryFacade
	AttendanceRepo AttendanceRepositoryFacade
	UserRepo       UserRepositoryFacade
}

package mapping

import (
	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:       d.ExpenseID,
		Description:     d.Description,
		Amount:          d.Amount,
		GSTAmount:       d.GSTAmount,
		TotalAmount:     d.TotalAmount,
		Category:        d.Category,
		VendorID:        d.VendorID,
		Status:          string(d.Status),
		PaymentStatus:   string(d.PaymentStatus),
		ApprovedBy:      d.ApprovedBy,
		ApprovalDate:    d.ApprovalDate,
		RejectionReason: d.RejectionReason,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:       m.ExpenseID,
		Description:     m.Description,
		Amount:          m.Amount,
		GSTAmount:       m.GSTAmount,
		TotalAmount:     m.TotalAmount,
		Category:        m.Category,
		VendorID:        m.VendorID,
		Status:          domain.ExpenseStatus(m.Status),
		PaymentStatus:   domain.ExpensePaymentStatus(m.PaymentStatus),
		ApprovedBy:      m.ApprovedBy,
		ApprovalDate:    m.ApprovalDate,
		RejectionReason: m.RejectionReason,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseSlice converts a slice of model Expenses to domain Expenses
func ToDomainExpenseSlice(ms []models.Expense) []domain.Expense {
	ds := make([]domain.Expense, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpense(m)
	}
	return ds
}

// ToDomainExpenseCategory converts a model ExpenseCategory to a domain
// ExpenseCategory
func ToDomainExpenseCategory(m models.ExpenseCategory) domain.ExpenseCategory {
	return domain.ExpenseCategory{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Type:        m.Type,
		GSTRate:     m.GSTRate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExpenseCategorySlice converts a slice of model ExpenseCategories to
// domain ExpenseCategories
func ToDomainExpenseCategorySlice(ms []models.ExpenseCategory) []domain.ExpenseCategory {
	ds := make([]domain.ExpenseCategory, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExpenseCategory(m)
	}
	return ds
}

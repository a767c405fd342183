package mapping

import (
	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		Number:        d.Number,
		Customer:      d.Customer,
		CustomerGSTIN: d.CustomerGSTIN,
		Amount:        d.Amount,
		AmountPaid:    d.AmountPaid,
		Status:        string(d.Status),
		DueDate:       d.DueDate,
		Source:        string(d.Source),
		Items:         d.Items,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		Number:        m.Number,
		Customer:      m.Customer,
		CustomerGSTIN: m.CustomerGSTIN,
		Amount:        m.Amount,
		AmountPaid:    m.AmountPaid,
		Status:        domain.InvoiceStatus(m.Status),
		DueDate:       m.DueDate,
		Source:        domain.InvoiceSource(m.Source),
		Items:         m.Items,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInvoiceSlice converts a slice of model Invoices to domain Invoices
func ToDomainInvoiceSlice(ms []models.Invoice) []domain.Invoice {
	ds := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoice(m)
	}
	return ds
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:    d.PaymentID,
		InvoiceID:    d.InvoiceID,
		PaymentDate:  d.PaymentDate,
		Amount:       d.Amount,
		Method:       d.Method,
		Status:       string(d.Status),
		IsReconciled: d.IsReconciled,
		JournalID:    d.JournalID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:    m.PaymentID,
		InvoiceID:    m.InvoiceID,
		PaymentDate:  m.PaymentDate,
		Amount:       m.Amount,
		Method:       m.Method,
		Status:       domain.PaymentStatus(m.Status),
		IsReconciled: m.IsReconciled,
		JournalID:    m.JournalID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}

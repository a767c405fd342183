package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenerp/erp_backend/internal/core/domain"
)

// InvoiceItemRequest is one sale line on an invoice or POS sale.
type InvoiceItemRequest struct {
	Name      string          `json:"name" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateInvoiceRequest defines the payload for creating an invoice.
type CreateInvoiceRequest struct {
	Number        string               `json:"number"`
	Customer      string               `json:"customer" binding:"required"`
	CustomerGSTIN string               `json:"customerGstin"`
	Amount        decimal.Decimal      `json:"amount" binding:"required,dgt0"`
	DueDate       time.Time            `json:"dueDate" binding:"required"`
	Items         []InvoiceItemRequest `json:"items" binding:"omitempty,dive"`
}

// RecordPaymentRequest defines the payload for recording a payment against an
// invoice.
type RecordPaymentRequest struct {
	InvoiceID   string          `json:"invoiceID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Method      string          `json:"method"`
	PaymentDate *time.Time      `json:"paymentDate"`
}

// RecordPOSSaleRequest defines the payload for recording a point-of-sale sale.
type RecordPOSSaleRequest struct {
	CustomerName string               `json:"customerName"`
	Total        decimal.Decimal      `json:"total" binding:"required,dgt0"`
	Items        []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID     string               `json:"invoiceID"`
	Number        string               `json:"number"`
	Customer      string               `json:"customer"`
	CustomerGSTIN string               `json:"customerGstin,omitempty"`
	Amount        decimal.Decimal      `json:"amount"`
	AmountPaid    decimal.Decimal      `json:"amountPaid"`
	Status        domain.InvoiceStatus `json:"status"`
	DueDate       time.Time            `json:"dueDate"`
	Source        domain.InvoiceSource `json:"source"`
	Items         []domain.InvoiceItem `json:"items,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID    string               `json:"paymentID"`
	InvoiceID    string               `json:"invoiceID"`
	PaymentDate  time.Time            `json:"paymentDate"`
	Amount       decimal.Decimal      `json:"amount"`
	Method       string               `json:"method,omitempty"`
	Status       domain.PaymentStatus `json:"status"`
	IsReconciled bool                 `json:"isReconciled"`
	JournalID    string               `json:"journalID"`
}

// ListInvoicesParams holds query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListInvoicesResponse is the paginated invoice listing.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ListPaymentsResponse is the paginated payment listing.
type ListPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToInvoiceResponse converts a domain.Invoice to its response DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		Number:        inv.Number,
		Customer:      inv.Customer,
		CustomerGSTIN: inv.CustomerGSTIN,
		Amount:        inv.Amount,
		AmountPaid:    inv.AmountPaid,
		Status:        inv.Status,
		DueDate:       inv.DueDate,
		Source:        inv.Source,
		Items:         inv.Items,
		CreatedAt:     inv.CreatedAt,
	}
}

// ToInvoiceResponses converts a slice of invoices.
func ToInvoiceResponses(invoices []domain.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// ToPaymentResponse converts a domain.Payment to its response DTO.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:    p.PaymentID,
		InvoiceID:    p.InvoiceID,
		PaymentDate:  p.PaymentDate,
		Amount:       p.Amount,
		Method:       p.Method,
		Status:       p.Status,
		IsReconciled: p.IsReconciled,
		JournalID:    p.JournalID,
	}
}

// ToPaymentResponses converts a slice of payments.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}

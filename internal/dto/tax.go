package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/zenerp/erp_backend/internal/core/domain"
)

// GSTRPeriodParams selects the return period. Months are 1-12.
type GSTRPeriodParams struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000"`
}

// GSTR1Summary aggregates outward supplies for the period.
type GSTR1Summary struct {
	TotalTaxableValue decimal.Decimal `json:"totalTaxableValue"`
	TotalTaxLiability decimal.Decimal `json:"totalTaxLiability"`
	B2BCount          int             `json:"b2bCount"`
	B2CLCount         int             `json:"b2clCount"`
	B2CSCount         int             `json:"b2csCount"`
}

// GSTR1Response is the GSTR-1 style outward supply return.
type GSTR1Response struct {
	Period  string       `json:"period"` // e.g. "March 2025"
	Summary GSTR1Summary `json:"summary"`
	Details struct {
		B2B  []InvoiceResponse `json:"b2b"`
		B2CL []InvoiceResponse `json:"b2cl"`
		B2CS []InvoiceResponse `json:"b2cs"`
	} `json:"details"`
}

// GSTTaxSplit is a tax amount split across IGST/CGST/SGST/Cess heads.
type GSTTaxSplit struct {
	IGST decimal.Decimal `json:"igst"`
	CGST decimal.Decimal `json:"cgst"`
	SGST decimal.Decimal `json:"sgst"`
	Cess decimal.Decimal `json:"cess"`
}

// GSTR3BResponse is the GSTR-3B style summary return.
type GSTR3BResponse struct {
	Period          string `json:"period"`
	OutwardSupplies struct {
		TaxableValue decimal.Decimal `json:"taxableValue"`
		GSTTaxSplit
	} `json:"outwardSupplies"`
	ITC     GSTTaxSplit `json:"itc"`
	Payment struct {
		TaxPayable decimal.Decimal `json:"taxPayable"`
	} `json:"payment"`
}

// CreateTDSPaymentRequest defines the payload for recording a TDS deduction.
type CreateTDSPaymentRequest struct {
	Section      string          `json:"section" binding:"required"`
	DeducteeName string          `json:"deducteeName" binding:"required"`
	DeducteePAN  string          `json:"deducteePan"`
	Amount       decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Rate         decimal.Decimal `json:"rate" binding:"required"`
	PaymentDate  time.Time       `json:"paymentDate" binding:"required"`
}

// TDSRecordResponse defines the data returned for a TDS record.
type TDSRecordResponse struct {
	TDSRecordID  string           `json:"tdsRecordID"`
	Section      string           `json:"section"`
	DeducteeName string           `json:"deducteeName"`
	DeducteePAN  string           `json:"deducteePan,omitempty"`
	Amount       decimal.Decimal  `json:"amount"`
	TDSAmount    decimal.Decimal  `json:"tdsAmount"`
	Rate         decimal.Decimal  `json:"rate"`
	PaymentDate  time.Time        `json:"paymentDate"`
	Status       domain.TDSStatus `json:"status"`
}

// CreateTaxRateRequest defines the payload for adding a registry tax rate.
type CreateTaxRateRequest struct {
	Name string          `json:"name" binding:"required"`
	Rate decimal.Decimal `json:"rate" binding:"required"`
	Type string          `json:"type" binding:"required"`
}

// UpdateTaxRateRequest defines the mutable tax rate fields.
type UpdateTaxRateRequest struct {
	Name *string          `json:"name,omitempty"`
	Rate *decimal.Decimal `json:"rate,omitempty"`
	Type *string          `json:"type,omitempty"`
}

// TaxRateResponse defines the data returned for a registry tax rate.
type TaxRateResponse struct {
	TaxRateID string          `json:"taxRateID"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	Type      string          `json:"type"`
	IsActive  bool            `json:"isActive"`
}

// ToTDSRecordResponse converts a domain.TDSRecord to its response DTO.
func ToTDSRecordResponse(r *domain.TDSRecord) TDSRecordResponse {
	return TDSRecordResponse{
		TDSRecordID:  r.TDSRecordID,
		Section:      r.Section,
		DeducteeName: r.DeducteeName,
		DeducteePAN:  r.DeducteePAN,
		Amount:       r.Amount,
		TDSAmount:    r.TDSAmount,
		Rate:         r.Rate,
		PaymentDate:  r.PaymentDate,
		Status:       r.Status,
	}
}

// ToTDSRecordResponses converts a slice of TDS records.
func ToTDSRecordResponses(records []domain.TDSRecord) []TDSRecordResponse {
	responses := make([]TDSRecordResponse, len(records))
	for i := range records {
		responses[i] = ToTDSRecordResponse(&records[i])
	}
	return responses
}

// ToTaxRateResponse converts a domain.TaxRate to its response DTO.
func ToTaxRateResponse(r *domain.TaxRate) TaxRateResponse {
	return TaxRateResponse{
		TaxRateID: r.TaxRateID,
		Name:      r.Name,
		Rate:      r.Rate,
		Type:      r.Type,
		IsActive:  r.IsActive,
	}
}

// ToTaxRateResponses converts a slice of tax rates.
func ToTaxRateResponses(rates []domain.TaxRate) []TaxRateResponse {
	responses := make([]TaxRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToTaxRateResponse(&rates[i])
	}
	return responses
}

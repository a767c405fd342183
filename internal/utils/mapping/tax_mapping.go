package mapping

import (
	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/models"
)

// ToModelTaxRate converts a domain TaxRate to a model TaxRate
func ToModelTaxRate(d domain.TaxRate) models.TaxRate {
	return models.TaxRate{
		TaxRateID:   d.TaxRateID,
		Name:        d.Name,
		Rate:        d.Rate,
		Type:        d.Type,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxRate converts a model TaxRate to a domain TaxRate
func ToDomainTaxRate(m models.TaxRate) domain.TaxRate {
	return domain.TaxRate{
		TaxRateID:   m.TaxRateID,
		Name:        m.Name,
		Rate:        m.Rate,
		Type:        m.Type,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxRateSlice converts a slice of model TaxRates to domain TaxRates
func ToDomainTaxRateSlice(ms []models.TaxRate) []domain.TaxRate {
	ds := make([]domain.TaxRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaxRate(m)
	}
	return ds
}

// ToModelTDSRecord converts a domain TDSRecord to a model TDSRecord
func ToModelTDSRecord(d domain.TDSRecord) models.TDSRecord {
	return models.TDSRecord{
		TDSRecordID:  d.TDSRecordID,
		Section:      d.Section,
		DeducteeName: d.DeducteeName,
		DeducteePAN:  d.DeducteePAN,
		Amount:       d.Amount,
		TDSAmount:    d.TDSAmount,
		Rate:         d.Rate,
		PaymentDate:  d.PaymentDate,
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTDSRecord converts a model TDSRecord to a domain TDSRecord
func ToDomainTDSRecord(m models.TDSRecord) domain.TDSRecord {
	return domain.TDSRecord{
		TDSRecordID:  m.TDSRecordID,
		Section:      m.Section,
		DeducteeName: m.DeducteeName,
		DeducteePAN:  m.DeducteePAN,
		Amount:       m.Amount,
		TDSAmount:    m.TDSAmount,
		Rate:         m.Rate,
		PaymentDate:  m.PaymentDate,
		Status:       domain.TDSStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTDSRecordSlice converts a slice of model TDSRecords to domain
// TDSRecords
func ToDomainTDSRecordSlice(ms []models.TDSRecord) []domain.TDSRecord {
	ds := make([]domain.TDSRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTDSRecord(m)
	}
	return ds
}

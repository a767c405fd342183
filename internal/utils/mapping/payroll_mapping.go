package mapping

import (
	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/models"
)

// ToModelPayrollRecord converts a domain PayrollRecord to a model
// PayrollRecord
func ToModelPayrollRecord(d domain.PayrollRecord) models.PayrollRecord {
	return models.PayrollRecord{
		PayrollID:     d.PayrollID,
		EmployeeID:    d.EmployeeID,
		EmployeeName:  d.EmployeeName,
		Month:         d.Month,
		Year:          d.Year,
		BasicPay:      d.BasicPay,
		Allowances:    d.Allowances,
		Deductions:    d.Deductions,
		LossOfPay:     d.LossOfPay,
		NetPay:        d.NetPay,
		Status:        string(d.Status),
		ProcessedDate: d.ProcessedDate,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayrollRecord converts a model PayrollRecord to a domain
// PayrollRecord
func ToDomainPayrollRecord(m models.PayrollRecord) domain.PayrollRecord {
	return domain.PayrollRecord{
		PayrollID:     m.PayrollID,
		EmployeeID:    m.EmployeeID,
		EmployeeName:  m.EmployeeName,
		Month:         m.Month,
		Year:          m.Year,
		BasicPay:      m.BasicPay,
		Allowances:    m.Allowances,
		Deductions:    m.Deductions,
		LossOfPay:     m.LossOfPay,
		NetPay:        m.NetPay,
		Status:        domain.PayrollStatus(m.Status),
		ProcessedDate: m.ProcessedDate,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPayrollRecordSlice converts a slice of model PayrollRecords to
// domain PayrollRecords
func ToDomainPayrollRecordSlice(ms []models.PayrollRecord) []domain.PayrollRecord {
	ds := make([]domain.PayrollRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayrollRecord(m)
	}
	return ds
}

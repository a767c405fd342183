package mapping

import (
	"time"

	"github.com/zenerp/erp_backend/internal/core/domain"
	"github.com/zenerp/erp_backend/internal/models"
)

// ToModelAttendanceRecord converts a domain AttendanceRecord to a model
// AttendanceRecord. A zero CheckIn (administratively marked days) stores NULL.
func ToModelAttendanceRecord(d domain.AttendanceRecord) models.AttendanceRecord {
	var checkIn *time.Time
	if !d.CheckIn.IsZero() {
		checkIn = &d.CheckIn
	}
	return models.AttendanceRecord{
		AttendanceID: d.AttendanceID,
		EmployeeID:   d.EmployeeID,
		Date:         d.Date,
		CheckIn:      checkIn,
		CheckOut:     d.CheckOut,
		Hours:        d.Hours,
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAttendanceRecord converts a model AttendanceRecord to a domain
// AttendanceRecord
func ToDomainAttendanceRecord(m models.AttendanceRecord) domain.AttendanceRecord {
	var checkIn time.Time
	if m.CheckIn != nil {
		checkIn = *m.CheckIn
	}
	return domain.AttendanceRecord{
		AttendanceID: m.AttendanceID,
		EmployeeID:   m.EmployeeID,
		Date:         m.Date,
		CheckIn:      checkIn,
		CheckOut:     m.CheckOut,
		Hours:        m.Hours,
		Status:       domain.AttendanceStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAttendanceRecordSlice converts a slice of model AttendanceRecords to
// domain AttendanceRecords
func ToDomainAttendanceRecordSlice(ms []models.AttendanceRecord) []domain.AttendanceRecord {
	ds := make([]domain.AttendanceRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAttendanceRecord(m)
	}
	return ds
}

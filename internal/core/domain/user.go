package domain

// User is an API user of the ERP backend. Only what authentication needs; the
// HR record of a person lives in Employee.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}

package domain

import "time"

// PaymentStatus is intentionally an open string: records are created as
// PENDING and reconciliation writes whatever status the gateway callback
// reports ("paid", "failed", ...) without validating it against an enum.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"

	// Gateway-reported terminal values seen in practice. Convention only,
	// never enforced.
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusFailed PaymentStatus = "failed"
)

// Application is one candidate's submission and its payment outcome.
type Application struct {
	ID            int64         `gorm:"primaryKey" json:"id"`
	FullName      string        `gorm:"type:varchar(255)" json:"full_name"`
	Email         string        `gorm:"type:varchar(255)" json:"email"`
	Phone         string        `gorm:"type:varchar(32)" json:"phone"`
	Gender        string        `gorm:"type:varchar(32)" json:"gender"`
	DOB           string        `gorm:"column:dob;type:varchar(32)" json:"dob"`
	Bio           string        `gorm:"type:text" json:"bio"`
	Resume        string        `gorm:"type:varchar(255);not null" json:"resume"`
	OrderID       string        `gorm:"uniqueIndex;type:varchar(64);not null" json:"order_id"`
	PaymentID     *string       `gorm:"type:varchar(64)" json:"payment_id"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(32);default:'PENDING';index" json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (Application) TableName() string { return "applications" }

package models

import (
	"time"
)

// TransactionStatus is the processor-side status of a payment transaction
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// PaymentTransaction is the record of a captured processor payment.
// It is always written in the same database transaction as the booking
// status update so the two can never diverge.
type PaymentTransaction struct {
	ID               uint              `json:"id" gorm:"primaryKey"`
	BookingID        uint              `json:"booking_id" gorm:"not null;index"`
	Booking          Booking           `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	PaymentMethod    PaymentMethod     `json:"payment_method" gorm:"type:varchar(20);not null"`
	TransactionID    string            `json:"transaction_id" gorm:"size:64;uniqueIndex;not null"`
	ReceiptNumber    string            `json:"receipt_number" gorm:"size:64;uniqueIndex;not null"`
	PayerID          *string           `json:"payer_id" gorm:"size:64"`
	PayerEmail       *string           `json:"payer_email" gorm:"size:255"`
	Amount           float64           `json:"amount" gorm:"type:decimal(10,2);not null"`
	CommissionAmount float64           `json:"commission_amount" gorm:"type:decimal(10,2);not null"`
	ProviderAmount   float64           `json:"provider_amount" gorm:"type:decimal(10,2);not null"`
	Currency         string            `json:"currency" gorm:"size:3;not null"`
	Status           TransactionStatus `json:"status" gorm:"type:varchar(20);not null"`
	PaymentData      string            `json:"payment_data" gorm:"type:jsonb"` // raw processor payload

	CreatedAt        time.Time         `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the PaymentTransaction model
func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a customer's rating of a completed booking. One review per
// booking; the provider may attach a single response.
type Review struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	BookingID        uint           `json:"booking_id" gorm:"uniqueIndex;not null"`
	Booking          Booking        `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	CustomerID       uint           `json:"customer_id" gorm:"not null;index"`
	Customer         User           `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ProviderID       uint           `json:"provider_id" gorm:"not null;index"`
	Provider         User           `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	Rating           int            `json:"rating" gorm:"type:int;not null;check:rating >= 1 AND rating <= 5"`
	Comment          *string        `json:"comment" gorm:"type:text"`
	ProviderResponse *string        `json:"provider_response" gorm:"type:text"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}

// ReviewCreateRequest is the request body for reviewing a completed booking
type ReviewCreateRequest struct {
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

// ReviewResponseRequest is the request body for a provider's response
type ReviewResponseRequest struct {
	Response string `json:"response" binding:"required"`
}

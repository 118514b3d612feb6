package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// VerificationStatus represents where a provider is in the review pipeline
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// DefaultCommissionRate is the marketplace cut applied to new providers.
const DefaultCommissionRate = 0.15

// ProviderProfile is the per-provider extension of a user profile
type ProviderProfile struct {
	ID                 uint               `json:"id" gorm:"primaryKey"`
	UserID             uint               `json:"user_id" gorm:"uniqueIndex;not null"`
	User               User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	BusinessName       *string            `json:"business_name" gorm:"size:255"`
	BioEn              *string            `json:"bio_en" gorm:"type:text"`
	BioAr              *string            `json:"bio_ar" gorm:"type:text"`
	YearsExperience    *int               `json:"years_experience"`
	IsVerified         bool               `json:"is_verified" gorm:"default:false"`
	VerificationStatus VerificationStatus `json:"verification_status" gorm:"type:varchar(20);not null;default:'pending';check:verification_status IN ('pending','approved','rejected')"`
	AvgRating          float64            `json:"avg_rating" gorm:"type:decimal(3,2);default:0"`
	TotalReviews       int                `json:"total_reviews" gorm:"default:0"`
	TotalBookings      int                `json:"total_bookings" gorm:"default:0"`
	WhatsappNumber     *string            `json:"whatsapp_number" gorm:"size:20"`
	ServiceArea        pq.StringArray     `json:"service_area" gorm:"type:text[]"`
	MinPrice           *float64           `json:"min_price" gorm:"type:decimal(10,2)"`
	MaxPrice           *float64           `json:"max_price" gorm:"type:decimal(10,2)"`
	CommissionRate     float64            `json:"commission_rate" gorm:"type:decimal(4,3);not null;default:0.15"`
	IsActive           bool               `json:"is_active" gorm:"default:true"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	DeletedAt          gorm.DeletedAt     `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the ProviderProfile model
func (ProviderProfile) TableName() string {
	return "provider_profiles"
}

// BeforeCreate is a GORM hook that runs before creating a provider profile
func (p *ProviderProfile) BeforeCreate(tx *gorm.DB) error {
	if p.CommissionRate == 0 {
		p.CommissionRate = DefaultCommissionRate
	}
	if p.VerificationStatus == "" {
		p.VerificationStatus = VerificationPending
	}
	return nil
}

// ProviderProfileRequest is the request body for creating/updating a provider profile
type ProviderProfileRequest struct {
	BusinessName    *string  `json:"business_name"`
	BioEn           *string  `json:"bio_en"`
	BioAr           *string  `json:"bio_ar"`
	YearsExperience *int     `json:"years_experience" binding:"omitempty,min=0,max=80"`
	WhatsappNumber  *string  `json:"whatsapp_number"`
	ServiceArea     []string `json:"service_area"`
	MinPrice        *float64 `json:"min_price" binding:"omitempty,min=0"`
	MaxPrice        *float64 `json:"max_price" binding:"omitempty,min=0"`
}

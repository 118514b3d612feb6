package models

import (
	"time"

	"gorm.io/gorm"
)

// PriceType describes how a service is priced
type PriceType string

const (
	PriceTypeFixed  PriceType = "fixed"
	PriceTypeHourly PriceType = "hourly"
)

// Service represents a service offered by a provider
type Service struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	ProviderID      uint            `json:"provider_id" gorm:"not null;index"`
	Provider        User            `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	CategoryID      uint            `json:"category_id" gorm:"not null;index"`
	Category        ServiceCategory `json:"category" gorm:"foreignKey:CategoryID"`
	NameEn          string          `json:"name_en" gorm:"type:varchar(200);not null"`
	NameAr          string          `json:"name_ar" gorm:"type:varchar(200);not null"`
	DescriptionEn   *string         `json:"description_en" gorm:"type:text"`
	DescriptionAr   *string         `json:"description_ar" gorm:"type:text"`
	BasePrice       float64         `json:"base_price" gorm:"type:decimal(10,2);not null"`
	PriceType       PriceType       `json:"price_type" gorm:"type:varchar(10);not null;default:'fixed';check:price_type IN ('fixed','hourly')"`
	DurationMinutes *int            `json:"duration_minutes"`
	IsActive        bool            `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       gorm.DeletedAt  `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the Service model
func (Service) TableName() string {
	return "services"
}

// ServiceRequest is the request body for creating/updating a service
type ServiceRequest struct {
	CategoryID      uint      `json:"category_id" binding:"required"`
	NameEn          string    `json:"name_en" binding:"required"`
	NameAr          string    `json:"name_ar" binding:"required"`
	DescriptionEn   *string   `json:"description_en"`
	DescriptionAr   *string   `json:"description_ar"`
	BasePrice       float64   `json:"base_price" binding:"required,gt=0"`
	PriceType       PriceType `json:"price_type" binding:"omitempty,oneof=fixed hourly"`
	DurationMinutes *int      `json:"duration_minutes" binding:"omitempty,min=1"`
}

// ServiceResponse is a service enriched with display names joined
// server-side. Name and CategoryName carry the bilingual value matching
// the resolved request language.
type ServiceResponse struct {
	ID              uint      `json:"id"`
	ProviderID      uint      `json:"provider_id"`
	CategoryID      uint      `json:"category_id"`
	NameEn          string    `json:"name_en"`
	NameAr          string    `json:"name_ar"`
	Name            string    `json:"name" gorm:"-"`
	DescriptionEn   *string   `json:"description_en"`
	DescriptionAr   *string   `json:"description_ar"`
	BasePrice       float64   `json:"base_price"`
	PriceType       PriceType `json:"price_type"`
	DurationMinutes *int      `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	ProviderName    string    `json:"provider_name"`
	CategoryNameEn  string    `json:"-"`
	CategoryNameAr  string    `json:"-"`
	CategoryName    string    `json:"category_name" gorm:"-"`
	CreatedAt       time.Time `json:"created_at"`
}

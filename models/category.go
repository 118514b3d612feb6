package models

import (
	"time"

	"gorm.io/gorm"
)

// ServiceCategory represents a bilingual service category
type ServiceCategory struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	NameEn        string         `json:"name_en" gorm:"type:varchar(100);not null;unique"`
	NameAr        string         `json:"name_ar" gorm:"type:varchar(100);not null"`
	DescriptionEn *string        `json:"description_en" gorm:"type:text"`
	DescriptionAr *string        `json:"description_ar" gorm:"type:text"`
	Icon          string         `json:"icon" gorm:"type:varchar(255)"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	SortOrder     int            `json:"sort_order" gorm:"default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the ServiceCategory model
func (ServiceCategory) TableName() string {
	return "service_categories"
}

// CategoryRequest is the request body for creating/updating a category
type CategoryRequest struct {
	NameEn        string  `json:"name_en" binding:"required"`
	NameAr        string  `json:"name_ar" binding:"required"`
	DescriptionEn *string `json:"description_en"`
	DescriptionAr *string `json:"description_ar"`
	Icon          string  `json:"icon"`
	SortOrder     int     `json:"sort_order"`
}

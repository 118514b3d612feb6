package models

import (
	"time"

	"gorm.io/gorm"
)

// Address is a saved service location belonging to a user
type Address struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	UserID        uint           `json:"user_id" gorm:"not null;index"`
	Label         string         `json:"label" gorm:"size:50"` // e.g. "Home", "Office"
	StreetAddress string         `json:"street_address" gorm:"size:255;not null"`
	City          string         `json:"city" gorm:"size:100;not null"`
	State         string         `json:"state" gorm:"size:100"`
	Country       string         `json:"country" gorm:"size:100;not null"`
	Latitude      *float64       `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude     *float64       `json:"longitude" gorm:"type:decimal(11,8)"`
	IsDefault     bool           `json:"is_default" gorm:"default:false"`
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the Address model
func (Address) TableName() string {
	return "addresses"
}

// Display renders the address as a single line for booking records
func (a *Address) Display() string {
	line := a.StreetAddress + ", " + a.City
	if a.State != "" {
		line += ", " + a.State
	}
	if a.Country != "" {
		line += ", " + a.Country
	}
	return line
}

// AddressRequest is the request body for creating/updating an address
type AddressRequest struct {
	Label         string   `json:"label"`
	StreetAddress string   `json:"street_address" binding:"required"`
	City          string   `json:"city" binding:"required"`
	State         string   `json:"state"`
	Country       string   `json:"country" binding:"required"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	IsDefault     bool     `json:"is_default"`
}

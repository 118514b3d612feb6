package models

import (
	"errors"
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusCODPending PaymentStatus = "cod_pending"
	PaymentStatusPaid       PaymentStatus = "paid"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodPayPal PaymentMethod = "paypal"
	PaymentMethodCOD    PaymentMethod = "cash_on_delivery"
)

// Actor identifies who is attempting a booking status change
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorProvider Actor = "provider"
	ActorAdmin    Actor = "admin"
	ActorSystem   Actor = "system"
)

// ErrIllegalTransition is returned when a status change is not allowed
// by the booking lifecycle for the acting role.
var ErrIllegalTransition = errors.New("illegal booking status transition")

type Booking struct {
	ID                 uint          `json:"id" gorm:"primaryKey"`
	CustomerID         uint          `json:"customer_id" gorm:"not null;index"`
	Customer           User          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ProviderID         uint          `json:"provider_id" gorm:"not null;index"`
	Provider           User          `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	ServiceID          uint          `json:"service_id" gorm:"not null"`
	Service            Service       `json:"service,omitempty" gorm:"foreignKey:ServiceID"`
	Status             BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','confirmed','in_progress','completed','cancelled')"`
	ScheduledDate      time.Time     `json:"scheduled_date" gorm:"not null"`
	ScheduledTime      string        `json:"scheduled_time" gorm:"size:20;not null"`
	Address            string        `json:"address" gorm:"size:500;not null"`
	Latitude           *float64      `json:"latitude" gorm:"type:decimal(10,8)"`
	Longitude          *float64      `json:"longitude" gorm:"type:decimal(11,8)"`
	Notes              *string       `json:"notes" gorm:"size:1000"`
	TotalAmount        float64       `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	CommissionAmount   float64       `json:"commission_amount" gorm:"type:decimal(10,2);not null"`
	PaymentStatus      PaymentStatus `json:"payment_status" gorm:"type:varchar(20);not null;default:'pending';check:payment_status IN ('pending','cod_pending','paid','refunded')"`
	PaymentMethod      PaymentMethod `json:"payment_method" gorm:"type:varchar(20);not null;check:payment_method IN ('paypal','cash_on_delivery')"`
	PayPalOrderID      *string       `json:"paypal_order_id" gorm:"size:64"`
	PaymentCompletedAt *time.Time    `json:"payment_completed_at"`
	CancelledBy        *Actor        `json:"cancelled_by" gorm:"type:varchar(20)"`
	CancellationReason *string       `json:"cancellation_reason" gorm:"size:500"`
	CreatedAt          time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// bookingTransitions is the booking lifecycle keyed by acting role.
// Any write that changes a booking's status must pass through Transition.
var bookingTransitions = map[Actor]map[BookingStatus][]BookingStatus{
	ActorProvider: {
		BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
		BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCompleted},
		BookingStatusInProgress: {BookingStatusCompleted},
	},
	ActorCustomer: {
		BookingStatusPending:   {BookingStatusCancelled},
		BookingStatusConfirmed: {BookingStatusCancelled},
	},
	ActorAdmin: {
		BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
		BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled},
		BookingStatusInProgress: {BookingStatusCompleted, BookingStatusCancelled},
		BookingStatusCompleted:  {BookingStatusCancelled},
	},
	ActorSystem: {
		BookingStatusPending: {BookingStatusConfirmed, BookingStatusCancelled},
	},
}

// CanTransition reports whether the actor may move a booking from its
// current status to the target status.
func (b *Booking) CanTransition(actor Actor, to BookingStatus) bool {
	allowed, ok := bookingTransitions[actor][b.Status]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Transition applies a status change after checking it against the
// lifecycle. Illegal transitions return ErrIllegalTransition.
func (b *Booking) Transition(actor Actor, to BookingStatus) error {
	if !b.CanTransition(actor, to) {
		return fmt.Errorf("%w: %s may not move booking from %s to %s",
			ErrIllegalTransition, actor, b.Status, to)
	}
	b.Status = to
	return nil
}

// Cancel moves the booking to cancelled and records who did it and why.
func (b *Booking) Cancel(actor Actor, reason string) error {
	if err := b.Transition(actor, BookingStatusCancelled); err != nil {
		return err
	}
	b.CancelledBy = &actor
	if reason != "" {
		b.CancellationReason = &reason
	}
	return nil
}

// IsTerminal reports whether the booking has reached a final status.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// InitialPaymentStatus returns the payment status a new booking starts
// with for the given payment method.
func InitialPaymentStatus(method PaymentMethod) PaymentStatus {
	if method == PaymentMethodCOD {
		return PaymentStatusCODPending
	}
	return PaymentStatusPending
}

// BookingCreateRequest is the request body for creating a booking
type BookingCreateRequest struct {
	ServiceID     uint          `json:"service_id" binding:"required"`
	AddressID     uint          `json:"address_id" binding:"required"`
	ScheduledDate string        `json:"scheduled_date" binding:"required"` // YYYY-MM-DD
	ScheduledTime string        `json:"scheduled_time" binding:"required"` // HH:MM
	Notes         *string       `json:"notes"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required,oneof=paypal cash_on_delivery"`
}

// BookingResponse is a booking enriched with display names joined
// server-side. ServiceName is filled in per request from the bilingual
// pair according to the resolved language.
type BookingResponse struct {
	Booking
	ServiceNameEn string `json:"-"`
	ServiceNameAr string `json:"-"`
	ServiceName   string `json:"service_name" gorm:"-"`
	CustomerName  string `json:"customer_name"`
	ProviderName  string `json:"provider_name"`
}

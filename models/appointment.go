package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AppointmentStatus string

const (
	StatusScheduled    AppointmentStatus = "scheduled"
	StatusCompleted    AppointmentStatus = "completed"
	StatusCanceled     AppointmentStatus = "canceled"
	StatusCanceledLate AppointmentStatus = "canceled_late"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCanceled, StatusCanceledLate:
		return true
	}
	return false
}

// Terminal statuses never transition again.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCanceled || s == StatusCanceledLate
}

type PaymentStatus string

const (
	PaymentPaid                   PaymentStatus = "paid"
	PaymentPending                PaymentStatus = "pending"
	PaymentNotApplicable          PaymentStatus = "not_applicable"
	PaymentPaidWithPackage        PaymentStatus = "paid_with_package"
	PaymentPendingPackagePurchase PaymentStatus = "pending_package_purchase"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentNotApplicable, PaymentPaidWithPackage, PaymentPendingPackagePurchase:
		return true
	}
	return false
}

// Appointment is a booked visit. Service and Professional are value copies
// taken at booking time so later catalog edits do not rewrite history.
type Appointment struct {
	ID                   string            `bson:"id" json:"id"`
	ClientID             string            `bson:"clientId" json:"clientId"`
	Service              Service           `bson:"service" json:"service"`
	Professional         Professional      `bson:"professional" json:"professional"`
	Date                 string            `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time                 string            `bson:"time" json:"time"` // "HH:MM / HH:MM"
	Status               AppointmentStatus `bson:"status" json:"status"`
	PaymentStatus        PaymentStatus     `bson:"paymentStatus" json:"paymentStatus"`
	ClientPackageID      string            `bson:"clientPackageId,omitempty" json:"clientPackageId,omitempty"`
	CommissionPercentage float64           `bson:"commissionPercentage" json:"commissionPercentage"`
	OriginalPrice        decimal.Decimal   `bson:"originalPrice" json:"originalPrice"`
	Price                decimal.Decimal   `bson:"price" json:"price"`
	DiscountName         string            `bson:"discountName,omitempty" json:"discountName,omitempty"`
	CreatedAt            time.Time         `bson:"createdAt" json:"createdAt"`
}

// Slots returns the slot labels the appointment occupies.
func (a Appointment) Slots() []string {
	return SplitSlots(a.Time)
}

// StartTime is the first occupied slot label.
func (a Appointment) StartTime() string {
	slots := a.Slots()
	if len(slots) == 0 {
		return ""
	}
	return slots[0]
}

// AppointmentPatch carries the fields of a partial update. Nil pointers are
// left untouched.
type AppointmentPatch struct {
	Date                 *string            `json:"date,omitempty"`
	Time                 *string            `json:"time,omitempty"`
	Status               *AppointmentStatus `json:"status,omitempty"`
	PaymentStatus        *PaymentStatus     `json:"paymentStatus,omitempty"`
	ClientPackageID      *string            `json:"clientPackageId,omitempty"`
	CommissionPercentage *float64           `json:"commissionPercentage,omitempty"`
	Price                *decimal.Decimal   `json:"price,omitempty"`
	Professional         *Professional      `json:"professional,omitempty"`
}

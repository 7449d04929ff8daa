package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PackageTemplate is a sellable bundle of sessions of a single service.
type PackageTemplate struct {
	ID                   string          `bson:"id" json:"id"`
	Name                 string          `bson:"name" json:"name"`
	ServiceID            string          `bson:"serviceId" json:"serviceId"`
	Price                decimal.Decimal `bson:"price" json:"price"`
	SessionCount         int             `bson:"sessionCount" json:"sessionCount"`
	ValidityDays         int             `bson:"validityDays" json:"validityDays"`
	CommissionPercentage *float64        `bson:"commissionPercentage,omitempty" json:"commissionPercentage,omitempty"`
	OwnerID              string          `bson:"ownerId,omitempty" json:"ownerId,omitempty"`
}

// ClientPackage is a purchased instance of a PackageTemplate holding a
// depleting balance of credits.
type ClientPackage struct {
	ID                string    `bson:"id" json:"id"`
	ClientID          string    `bson:"clientId" json:"clientId"`
	PackageTemplateID string    `bson:"packageTemplateId" json:"packageTemplateId"`
	PurchaseDate      time.Time `bson:"purchaseDate" json:"purchaseDate"`
	ExpiryDate        time.Time `bson:"expiryDate" json:"expiryDate"`
	CreditsRemaining  int       `bson:"creditsRemaining" json:"creditsRemaining"`
}

// ActiveOn reports whether the package can still be drawn from on day asOf.
// Expiry is compared by calendar day, so a package expiring today is active.
func (p ClientPackage) ActiveOn(asOf time.Time) bool {
	if p.CreditsRemaining <= 0 {
		return false
	}
	return !DayOf(p.ExpiryDate).Before(DayOf(asOf))
}

// ActivePackage pairs a client package with its resolved template.
type ActivePackage struct {
	Package  ClientPackage   `json:"package"`
	Template PackageTemplate `json:"template"`
}

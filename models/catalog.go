package models

import "github.com/shopspring/decimal"

// ItemType distinguishes the two sellable things a discount or a commission
// override can point at.
type ItemType string

const (
	ItemService ItemType = "service"
	ItemPackage ItemType = "package"
)

func (t ItemType) Valid() bool {
	return t == ItemService || t == ItemPackage
}

// Service is a bookable salon service.
type Service struct {
	ID                   string          `bson:"id" json:"id"`
	Category             string          `bson:"category" json:"category"`
	Name                 string          `bson:"name" json:"name"`
	Price                decimal.Decimal `bson:"price" json:"price"`
	Duration             int             `bson:"duration" json:"duration"`                                               // minutes, multiple of 30
	CommissionPercentage *float64        `bson:"commissionPercentage,omitempty" json:"commissionPercentage,omitempty"` // nil falls back to the salon default
	RetouchPeriod        int             `bson:"retouchPeriod,omitempty" json:"retouchPeriod,omitempty"`               // months, 0 = not tracked
	OwnerID              string          `bson:"ownerId,omitempty" json:"ownerId,omitempty"`                           // professional-private service
}

// Slots returns how many 30-minute slots the service occupies.
func (s Service) Slots() int {
	return SlotsNeeded(s.Duration)
}

// CommissionOverride replaces the commission for one item on one professional.
type CommissionOverride struct {
	ItemID     string   `bson:"itemId" json:"itemId"`
	ItemType   ItemType `bson:"itemType" json:"itemType"`
	Percentage float64  `bson:"percentage" json:"percentage"`
}

// Professional is a member of staff that can be booked.
type Professional struct {
	ID                  string               `bson:"id" json:"id"`
	Name                string               `bson:"name" json:"name"`
	WorkingDays         []int                `bson:"workingDays,omitempty" json:"workingDays,omitempty"` // 0 = Sunday
	StartTime           string               `bson:"startTime,omitempty" json:"startTime,omitempty"`     // "HH:MM", overrides salon hours
	EndTime             string               `bson:"endTime,omitempty" json:"endTime,omitempty"`
	ServiceIDs          []string             `bson:"serviceIds,omitempty" json:"serviceIds,omitempty"`
	CommissionOverrides []CommissionOverride `bson:"commissionOverrides,omitempty" json:"commissionOverrides,omitempty"`
}

// OffersService reports whether the professional can be booked for serviceID.
func (p Professional) OffersService(serviceID string) bool {
	for _, id := range p.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// Client is a salon customer.
type Client struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
	DeviceToken string `bson:"deviceToken,omitempty" json:"deviceToken,omitempty"` // FCM registration token
}

// SalonSettings holds the salon-wide defaults used when a professional has no
// override of their own.
type SalonSettings struct {
	OpenTime          string  `json:"openTime"`
	CloseTime         string  `json:"closeTime"`
	WorkingDays       []int   `json:"workingDays"`
	DefaultCommission float64 `json:"defaultCommission"`
}

// Clone returns a copy that shares no memory with s.
func (s Service) Clone() Service {
	if s.CommissionPercentage != nil {
		v := *s.CommissionPercentage
		s.CommissionPercentage = &v
	}
	return s
}

// Clone returns a copy that shares no memory with p.
func (p Professional) Clone() Professional {
	p.WorkingDays = append([]int(nil), p.WorkingDays...)
	p.ServiceIDs = append([]string(nil), p.ServiceIDs...)
	p.CommissionOverrides = append([]CommissionOverride(nil), p.CommissionOverrides...)
	return p
}

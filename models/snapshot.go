package models

import "time"

// Snapshot is the full salon state handed over by the persistence
// collaborator at startup.
type Snapshot struct {
	Services         []Service         `json:"services"`
	Professionals    []Professional    `json:"professionals"`
	Clients          []Client          `json:"clients"`
	PackageTemplates []PackageTemplate `json:"packageTemplates"`
	ClientPackages   []ClientPackage   `json:"clientPackages"`
	Discounts        []WeeklyDiscount  `json:"discounts"`
	Appointments     []Appointment     `json:"appointments"`
}

type EventKind string

const (
	KindAppointment     EventKind = "appointment"
	KindClientPackage   EventKind = "clientPackage"
	KindPackageTemplate EventKind = "packageTemplate"
	KindService         EventKind = "service"
	KindProfessional    EventKind = "professional"
	KindClient          EventKind = "client"
	KindDiscount        EventKind = "discount"
)

type EventAction string

const (
	ActionUpsert EventAction = "upsert"
	ActionDelete EventAction = "delete"
)

// Event describes one whole-object mutation of a store. Payload holds the
// new value for upserts and the removed value for deletes.
type Event struct {
	Kind    EventKind   `json:"kind"`
	Action  EventAction `json:"action"`
	ID      string      `json:"id"`
	Payload any         `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

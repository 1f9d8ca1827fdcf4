package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInterval = errors.New("booking start must precede end")

type BookingStatus string

const (
	BookingReserved   BookingStatus = "reserved"
	BookingEnRoute    BookingStatus = "en_route"
	BookingInProgress BookingStatus = "in_progress"
	BookingEditing    BookingStatus = "editing"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingDelivered  BookingStatus = "delivered"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingReserved, BookingEnRoute, BookingInProgress, BookingEditing,
		BookingCompleted, BookingCancelled, BookingDelivered:
		return true
	}
	return false
}

// Final reports whether a booking in this status can no longer change status.
func (s BookingStatus) Final() bool {
	return s == BookingCancelled || s == BookingDelivered
}

// Booking is a time-bounded assignment of photographers to a shoot.
type Booking struct {
	ID            uuid.UUID     `json:"id"`
	Start         time.Time     `json:"start"`
	End           time.Time     `json:"end"`
	Photographers []uuid.UUID   `json:"photographers"`
	Status        BookingStatus `json:"status"`
	Location      string        `json:"location,omitempty"`
	CustomerRef   string        `json:"customer_ref,omitempty"`
	ProjectID     *uuid.UUID    `json:"project_id,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (b Booking) Validate() error {
	if !b.Start.Before(b.End) {
		return ErrInvalidInterval
	}
	return nil
}

// Clone returns a copy that shares no slices or pointers with b.
func (b Booking) Clone() Booking {
	cp := b
	cp.Photographers = append([]uuid.UUID(nil), b.Photographers...)
	if b.ProjectID != nil {
		id := *b.ProjectID
		cp.ProjectID = &id
	}
	return cp
}

type Availability string

const (
	Available Availability = "available"
	Busy      Availability = "busy"
	OnLeave   Availability = "on_leave"
)

func (a Availability) Valid() bool {
	return a == Available || a == Busy || a == OnLeave
}

type Photographer struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Availability Availability `json:"availability"`
}

type LeadStatus string

const (
	LeadInquiry      LeadStatus = "inquiry"
	LeadConsultation LeadStatus = "consultation"
	LeadProposal     LeadStatus = "proposal"
	LeadContracted   LeadStatus = "contracted"
	LeadCompleted    LeadStatus = "completed"
	LeadCancelled    LeadStatus = "cancelled"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadInquiry, LeadConsultation, LeadProposal, LeadContracted, LeadCompleted, LeadCancelled:
		return true
	}
	return false
}

type Lead struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Contact   string     `json:"contact"`
	Status    LeadStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

type ProjectStatus string

const (
	ProjectScheduled  ProjectStatus = "scheduled"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectProofReady ProjectStatus = "proof_ready"
	ProjectEditing    ProjectStatus = "editing"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectDelivered  ProjectStatus = "delivered"
	ProjectCancelled  ProjectStatus = "cancelled"
	ProjectArchived   ProjectStatus = "archived"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectScheduled, ProjectInProgress, ProjectProofReady, ProjectEditing,
		ProjectCompleted, ProjectDelivered, ProjectCancelled, ProjectArchived:
		return true
	}
	return false
}

// Project is the fulfillment record of a lead. PaymentCompleted mirrors the
// payments collaborator and is never derived from the other fields.
type Project struct {
	ID               uuid.UUID     `json:"id"`
	LeadID           uuid.UUID     `json:"lead_id"`
	Status           ProjectStatus `json:"status"`
	BookingID        *uuid.UUID    `json:"booking_id,omitempty"`
	PaymentCompleted bool          `json:"payment_completed"`
	PaymentIntentID  string        `json:"payment_intent_id,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
}

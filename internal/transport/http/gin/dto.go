package httpgin

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/domain"
)

type CreatePhotographerRequest struct {
	Name         string `json:"name" binding:"required"`
	Availability string `json:"availability"`
}

type SetAvailabilityRequest struct {
	Availability string `json:"availability" binding:"required"`
}

type CreateBookingRequest struct {
	Start         string   `json:"start" binding:"required"`
	End           string   `json:"end" binding:"required"`
	Photographers []string `json:"photographers"`
	Location      string   `json:"location"`
	CustomerRef   string   `json:"customer_ref"`
	ProjectID     string   `json:"project_id" binding:"omitempty,uuid"`
}

// RescheduleRequest moves a booking. Omitting photographers keeps the
// current crew; an empty list unassigns everyone.
type RescheduleRequest struct {
	Start         string   `json:"start" binding:"required"`
	End           string   `json:"end" binding:"required"`
	Photographers []string `json:"photographers"`
}

type AssignPhotographersRequest struct {
	Photographers []string `json:"photographers"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateLeadRequest struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
}

type CreateProjectRequest struct {
	LeadID string `json:"lead_id" binding:"required,uuid"`
}

type PaymentRequest struct {
	Completed       bool   `json:"completed"`
	PaymentIntentID string `json:"payment_intent_id"`
}

type InquiryRequest struct {
	Name          string `json:"name" binding:"required"`
	Contact       string `json:"contact"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
	Location      string `json:"location"`
}

type NormalizeResponse struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Decided bool   `json:"decided"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ConflictResponse struct {
	Error     string           `json:"error"`
	Conflicts []domain.Booking `json:"conflicts"`
}

var instantLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseInstant accepts RFC 3339, or a wall-clock time read in loc.
func parseInstant(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time %q", s)
}

func parseUUIDs(ss []string) ([]uuid.UUID, error) {
	if ss == nil {
		return nil, nil
	}

	out := make([]uuid.UUID, 0, len(ss))
	for _, s := range ss {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", s)
		}
		out = append(out, id)
	}

	return out, nil
}

type AttachBookingRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

package crm

import "errors"

var (
	ErrPhotographerNotFound = errors.New("photographer not found")
	ErrLeadNotFound         = errors.New("lead not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidAvailability  = errors.New("unknown availability")
	ErrInvalidLeadStatus    = errors.New("unknown lead status")
	ErrInvalidProjectStatus = errors.New("unknown project status")
	ErrNameRequired         = errors.New("name is required")
)

package portal

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/kirinyoku/shootplan/internal/payments"
	steps "github.com/kirinyoku/shootplan/internal/portal"
	"github.com/kirinyoku/shootplan/internal/repository"
)

type Service struct {
	store    repository.Store
	payments payments.Checker
}

// New builds the service. A nil checker trusts the stored payment flag.
func New(store repository.Store, checker payments.Checker) *Service {
	if checker == nil {
		checker = payments.FlagChecker{}
	}

	return &Service{
		store:    store,
		payments: checker,
	}
}

// Journey is the customer's view of their progress. It is derived on every
// read and never stored.
type Journey struct {
	LeadID        uuid.UUID            `json:"lead_id"`
	ProjectID     *uuid.UUID           `json:"project_id,omitempty"`
	Step          steps.Step           `json:"step"`
	Label         string               `json:"label"`
	LeadStatus    domain.LeadStatus    `json:"lead_status"`
	ProjectStatus domain.ProjectStatus `json:"project_status,omitempty"`
	Paid          bool                 `json:"paid"`
}

// Journey derives the portal step of a lead from the lead, its most recent
// project that is not archived, and the payment state of that project.
//
// Returns:
//   - error: portal.ErrLeadNotFound if the lead does not exist.
func (s *Service) Journey(ctx context.Context, leadID uuid.UUID) (Journey, error) {
	const op = "service.portal.Journey"

	lead, err := s.store.Leads().Get(ctx, leadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Journey{}, fmt.Errorf("%s:%w", op, ErrLeadNotFound)
		}
		return Journey{}, fmt.Errorf("%s:%w", op, err)
	}

	projects, err := s.store.Projects().ListByLead(ctx, leadID)
	if err != nil {
		return Journey{}, fmt.Errorf("%s:%w", op, err)
	}

	j := Journey{LeadID: lead.ID, LeadStatus: lead.Status}

	for _, p := range projects {
		if p.Status == domain.ProjectArchived {
			continue
		}

		paid, err := s.payments.Paid(ctx, p)
		if err != nil {
			return Journey{}, fmt.Errorf("%s:%w", op, err)
		}

		id := p.ID
		j.ProjectID = &id
		j.ProjectStatus = p.Status
		j.Paid = paid
		break
	}

	j.Step = steps.DeriveStep(j.LeadStatus, j.ProjectStatus, j.Paid)
	j.Label = j.Step.String()

	return j, nil
}

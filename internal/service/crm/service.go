package crm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/broadcast"
	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/kirinyoku/shootplan/internal/repository"
	redisrepo "github.com/kirinyoku/shootplan/internal/repository/redis"
	"github.com/kirinyoku/shootplan/internal/uow"
)

const (
	entityPhotographer = "photographer"
	entityLead         = "lead"
	entityProject      = "project"
)

// Service manages the studio's people and commercial records: photographers,
// leads and the projects booked for them.
type Service struct {
	store repository.Store
	cache *redisrepo.Cache
	bus   *broadcast.Bus
	uow   *uow.UoW
	now   func() time.Time
}

// New builds the service. cache and bus may be nil.
func New(store repository.Store, cache *redisrepo.Cache, bus *broadcast.Bus) *Service {
	return &Service{
		store: store,
		cache: cache,
		bus:   bus,
		uow:   uow.NewUoW(store),
		now:   time.Now,
	}
}

func (s *Service) CreatePhotographer(ctx context.Context, name string, a domain.Availability) (domain.Photographer, error) {
	const op = "service.crm.CreatePhotographer"

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Photographer{}, fmt.Errorf("%s:%w", op, ErrNameRequired)
	}
	if a == "" {
		a = domain.Available
	}
	if !a.Valid() {
		return domain.Photographer{}, fmt.Errorf("%s:%w", op, ErrInvalidAvailability)
	}

	p := domain.Photographer{ID: uuid.New(), Name: name, Availability: a}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		if err := tx.Photographers().Create(ctx, p); err != nil {
			return err
		}
		after(s.photographersChanged(broadcast.EntityCreated, p))
		return nil
	})
	if err != nil {
		return domain.Photographer{}, fmt.Errorf("%s:%w", op, err)
	}

	return p, nil
}

func (s *Service) ListPhotographers(ctx context.Context) ([]domain.Photographer, error) {
	const op = "service.crm.ListPhotographers"

	list, err := s.store.Photographers().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	if list == nil {
		list = []domain.Photographer{}
	}

	return list, nil
}

// SetAvailability changes a photographer's coarse flag. Existing bookings
// are left as they are; only later availability reads see the change.
func (s *Service) SetAvailability(ctx context.Context, id uuid.UUID, a domain.Availability) (domain.Photographer, error) {
	const op = "service.crm.SetAvailability"

	if !a.Valid() {
		return domain.Photographer{}, fmt.Errorf("%s:%w", op, ErrInvalidAvailability)
	}

	var out domain.Photographer

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		if err := tx.Photographers().SetAvailability(ctx, id, a); err != nil {
			return notFound(err, ErrPhotographerNotFound)
		}
		p, err := tx.Photographers().Get(ctx, id)
		if err != nil {
			return notFound(err, ErrPhotographerNotFound)
		}
		out = *p
		after(s.photographersChanged(broadcast.StatusChanged, out))
		return nil
	})
	if err != nil {
		return domain.Photographer{}, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) CreateLead(ctx context.Context, name, contact string) (domain.Lead, error) {
	const op = "service.crm.CreateLead"

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Lead{}, fmt.Errorf("%s:%w", op, ErrNameRequired)
	}

	l := domain.Lead{
		ID:        uuid.New(),
		Name:      name,
		Contact:   strings.TrimSpace(contact),
		Status:    domain.LeadInquiry,
		CreatedAt: s.now(),
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		if err := tx.Leads().Create(ctx, l); err != nil {
			return err
		}
		after(s.announce(broadcast.EntityCreated, entityLead, l.ID, string(l.Status)))
		return nil
	})
	if err != nil {
		return domain.Lead{}, fmt.Errorf("%s:%w", op, err)
	}

	return l, nil
}

func (s *Service) GetLead(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	const op = "service.crm.GetLead"

	l, err := s.store.Leads().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, notFound(err, ErrLeadNotFound))
	}

	return l, nil
}

func (s *Service) SetLeadStatus(ctx context.Context, id uuid.UUID, status domain.LeadStatus) error {
	const op = "service.crm.SetLeadStatus"

	if !status.Valid() {
		return fmt.Errorf("%s:%w", op, ErrInvalidLeadStatus)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		if err := tx.Leads().SetStatus(ctx, id, status); err != nil {
			return notFound(err, ErrLeadNotFound)
		}
		after(s.announce(broadcast.StatusChanged, entityLead, id, string(status)))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (s *Service) CreateProject(ctx context.Context, leadID uuid.UUID) (domain.Project, error) {
	const op = "service.crm.CreateProject"

	p := domain.Project{
		ID:        uuid.New(),
		LeadID:    leadID,
		Status:    domain.ProjectScheduled,
		CreatedAt: s.now(),
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		if _, err := tx.Leads().Get(ctx, leadID); err != nil {
			return notFound(err, ErrLeadNotFound)
		}
		if err := tx.Projects().Create(ctx, p); err != nil {
			return err
		}
		after(s.announce(broadcast.EntityCreated, entityProject, p.ID, string(p.Status)))
		return nil
	})
	if err != nil {
		return domain.Project{}, fmt.Errorf("%s:%w", op, err)
	}

	return p, nil
}

func (s *Service) GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	const op = "service.crm.GetProject"

	p, err := s.store.Projects().Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, notFound(err, ErrProjectNotFound))
	}

	return p, nil
}

func (s *Service) SetProjectStatus(ctx context.Context, id uuid.UUID, status domain.ProjectStatus) error {
	const op = "service.crm.SetProjectStatus"

	if !status.Valid() {
		return fmt.Errorf("%s:%w", op, ErrInvalidProjectStatus)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		if err := tx.Projects().SetStatus(ctx, id, status); err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		after(s.announce(broadcast.StatusChanged, entityProject, id, string(status)))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// RecordPayment sets the payment flag of a project and, when intentID is not
// empty, the Stripe PaymentIntent it is checked against.
func (s *Service) RecordPayment(ctx context.Context, id uuid.UUID, completed bool, intentID string) (*domain.Project, error) {
	const op = "service.crm.RecordPayment"

	var out domain.Project

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		if err := tx.Projects().SetPayment(ctx, id, completed, strings.TrimSpace(intentID)); err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		p, err := tx.Projects().Get(ctx, id)
		if err != nil {
			return notFound(err, ErrProjectNotFound)
		}
		out = *p
		after(s.announce(broadcast.EntityUpdated, entityProject, id, string(p.Status)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &out, nil
}

// AttachBooking links an existing booking to a project in both directions.
func (s *Service) AttachBooking(ctx context.Context, projectID, bookingID uuid.UUID) error {
	const op = "service.crm.AttachBooking"

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		b, err := tx.Bookings().Get(ctx, bookingID)
		if err != nil {
			return notFound(err, ErrBookingNotFound)
		}
		if err := tx.Projects().AttachBooking(ctx, projectID, bookingID); err != nil {
			return notFound(err, ErrProjectNotFound)
		}

		b.ProjectID = &projectID
		b.UpdatedAt = s.now()
		if err := tx.Bookings().Update(ctx, *b); err != nil {
			return err
		}

		after(s.announce(broadcast.EntityUpdated, entityProject, projectID, ""))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (s *Service) photographersChanged(typ broadcast.Type, p domain.Photographer) uow.AfterCommit {
	announce := s.announce(typ, entityPhotographer, p.ID, string(p.Availability))
	return func(ctx context.Context) {
		if s.cache != nil {
			_ = s.cache.InvalidatePhotographers(ctx)
		}
		announce(ctx)
	}
}

func (s *Service) announce(typ broadcast.Type, entity string, id uuid.UUID, status string) uow.AfterCommit {
	return func(ctx context.Context) {
		if s.bus == nil {
			return
		}
		s.bus.Publish(typ, broadcast.EntityRef{Entity: entity, ID: id.String(), Status: status})
	}
}

func notFound(err, sentinel error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return sentinel
	}
	return err
}

package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/kirinyoku/shootplan/internal/repository"
)

type PhotographerRepo struct {
	v *view
}

func (r *PhotographerRepo) Create(ctx context.Context, p domain.Photographer) error {
	const op = "memory.PhotographerRepo.Create"

	return r.v.write(func(d *dataset) error {
		if _, ok := d.photographers[p.ID]; ok {
			return fmt.Errorf("%s:%w", op, repository.ErrConflict)
		}
		d.photographers[p.ID] = p
		return nil
	})
}

func (r *PhotographerRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Photographer, error) {
	const op = "memory.PhotographerRepo.Get"

	var out domain.Photographer
	err := r.v.read(func(d *dataset) error {
		p, ok := d.photographers[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *PhotographerRepo) List(ctx context.Context) ([]domain.Photographer, error) {
	var out []domain.Photographer
	_ = r.v.read(func(d *dataset) error {
		for _, p := range d.photographers {
			out = append(out, p)
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	return out, nil
}

func (r *PhotographerRepo) SetAvailability(ctx context.Context, id uuid.UUID, a domain.Availability) error {
	const op = "memory.PhotographerRepo.SetAvailability"

	return r.v.write(func(d *dataset) error {
		p, ok := d.photographers[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		p.Availability = a
		d.photographers[id] = p
		return nil
	})
}

type LeadRepo struct {
	v *view
}

func (r *LeadRepo) Create(ctx context.Context, l domain.Lead) error {
	const op = "memory.LeadRepo.Create"

	return r.v.write(func(d *dataset) error {
		if _, ok := d.leads[l.ID]; ok {
			return fmt.Errorf("%s:%w", op, repository.ErrConflict)
		}
		d.leads[l.ID] = l
		return nil
	})
}

func (r *LeadRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	const op = "memory.LeadRepo.Get"

	var out domain.Lead
	err := r.v.read(func(d *dataset) error {
		l, ok := d.leads[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		out = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *LeadRepo) SetStatus(ctx context.Context, id uuid.UUID, s domain.LeadStatus) error {
	const op = "memory.LeadRepo.SetStatus"

	return r.v.write(func(d *dataset) error {
		l, ok := d.leads[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		l.Status = s
		d.leads[id] = l
		return nil
	})
}

type ProjectRepo struct {
	v *view
}

func (r *ProjectRepo) Create(ctx context.Context, p domain.Project) error {
	const op = "memory.ProjectRepo.Create"

	return r.v.write(func(d *dataset) error {
		if _, ok := d.projects[p.ID]; ok {
			return fmt.Errorf("%s:%w", op, repository.ErrConflict)
		}
		if _, ok := d.leads[p.LeadID]; !ok {
			return fmt.Errorf("%s: lead %s:%w", op, p.LeadID, repository.ErrNotFound)
		}
		d.projects[p.ID] = cloneProject(p)
		return nil
	})
}

func (r *ProjectRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	const op = "memory.ProjectRepo.Get"

	var out domain.Project
	err := r.v.read(func(d *dataset) error {
		p, ok := d.projects[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		out = cloneProject(p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func (r *ProjectRepo) ListByLead(ctx context.Context, leadID uuid.UUID) ([]domain.Project, error) {
	var out []domain.Project
	_ = r.v.read(func(d *dataset) error {
		for _, p := range d.projects {
			if p.LeadID == leadID {
				out = append(out, cloneProject(p))
			}
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *ProjectRepo) SetStatus(ctx context.Context, id uuid.UUID, s domain.ProjectStatus) error {
	return r.update("memory.ProjectRepo.SetStatus", id, func(p *domain.Project) {
		p.Status = s
	})
}

func (r *ProjectRepo) SetPayment(ctx context.Context, id uuid.UUID, completed bool, intentID string) error {
	return r.update("memory.ProjectRepo.SetPayment", id, func(p *domain.Project) {
		p.PaymentCompleted = completed
		if intentID != "" {
			p.PaymentIntentID = intentID
		}
	})
}

func (r *ProjectRepo) AttachBooking(ctx context.Context, id uuid.UUID, bookingID uuid.UUID) error {
	return r.update("memory.ProjectRepo.AttachBooking", id, func(p *domain.Project) {
		p.BookingID = &bookingID
	})
}

func (r *ProjectRepo) update(op string, id uuid.UUID, fn func(p *domain.Project)) error {
	return r.v.write(func(d *dataset) error {
		p, ok := d.projects[id]
		if !ok {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		fn(&p)
		d.projects[id] = p
		return nil
	})
}

package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/kirinyoku/shootplan/internal/repository"
)

type dataset struct {
	bookings      map[uuid.UUID]domain.Booking
	photographers map[uuid.UUID]domain.Photographer
	leads         map[uuid.UUID]domain.Lead
	projects      map[uuid.UUID]domain.Project
}

func newDataset() *dataset {
	return &dataset{
		bookings:      make(map[uuid.UUID]domain.Booking),
		photographers: make(map[uuid.UUID]domain.Photographer),
		leads:         make(map[uuid.UUID]domain.Lead),
		projects:      make(map[uuid.UUID]domain.Project),
	}
}

func (d *dataset) clone() *dataset {
	cp := &dataset{
		bookings:      make(map[uuid.UUID]domain.Booking, len(d.bookings)),
		photographers: make(map[uuid.UUID]domain.Photographer, len(d.photographers)),
		leads:         make(map[uuid.UUID]domain.Lead, len(d.leads)),
		projects:      make(map[uuid.UUID]domain.Project, len(d.projects)),
	}
	for k, v := range d.bookings {
		cp.bookings[k] = v.Clone()
	}
	for k, v := range d.photographers {
		cp.photographers[k] = v
	}
	for k, v := range d.leads {
		cp.leads[k] = v
	}
	for k, v := range d.projects {
		cp.projects[k] = cloneProject(v)
	}
	return cp
}

// Store keeps every record in process memory. Transactions work on a copy of
// the data set that replaces the live one on success, so a failed
// transaction leaves no trace. Transactions are serialized.
type Store struct {
	mu   sync.RWMutex
	data *dataset
}

func NewStore() *Store {
	return &Store{data: newDataset()}
}

func (s *Store) Bookings() repository.BookingRepo {
	return &BookingRepo{v: &view{store: s}}
}

func (s *Store) Photographers() repository.PhotographerRepo {
	return &PhotographerRepo{v: &view{store: s}}
}

func (s *Store) Leads() repository.LeadRepo {
	return &LeadRepo{v: &view{store: s}}
}

func (s *Store) Projects() repository.ProjectRepo {
	return &ProjectRepo{v: &view{store: s}}
}

// RunTx runs fn against a private copy of the data. The repositories of the
// Store itself must not be used inside fn.
func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := s.data.clone()
	if err := fn(ctx, &txView{v: &view{work: work}}); err != nil {
		return err
	}

	s.data = work
	return nil
}

type txView struct {
	v *view
}

func (t *txView) Bookings() repository.BookingRepo           { return &BookingRepo{v: t.v} }
func (t *txView) Photographers() repository.PhotographerRepo { return &PhotographerRepo{v: t.v} }
func (t *txView) Leads() repository.LeadRepo                 { return &LeadRepo{v: t.v} }
func (t *txView) Projects() repository.ProjectRepo           { return &ProjectRepo{v: t.v} }

// view resolves to the live data set under the store lock, or to a
// transaction's working copy that the caller already owns.
type view struct {
	store *Store
	work  *dataset
}

func (v *view) read(fn func(d *dataset) error) error {
	if v.work != nil {
		return fn(v.work)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.data)
}

func (v *view) write(fn func(d *dataset) error) error {
	if v.work != nil {
		return fn(v.work)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}

func cloneProject(p domain.Project) domain.Project {
	if p.BookingID != nil {
		id := *p.BookingID
		p.BookingID = &id
	}
	return p
}

package schedule

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/broadcast"
	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/kirinyoku/shootplan/internal/repository"
	redisrepo "github.com/kirinyoku/shootplan/internal/repository/redis"
	sched "github.com/kirinyoku/shootplan/internal/schedule"
	"github.com/kirinyoku/shootplan/internal/timeslot"
	"github.com/kirinyoku/shootplan/internal/uow"
)

type ConflictPolicy string

const (
	// PolicyBlock rejects a change that double-books a photographer.
	PolicyBlock ConflictPolicy = "block"
	// PolicyWarn stores the change and reports the conflicts.
	PolicyWarn ConflictPolicy = "warn"
)

type Config struct {
	// Location is the studio time zone that defines calendar days.
	Location *time.Location
	Policy   ConflictPolicy
	// CountCancelled keeps cancelled bookings occupying their time slot.
	CountCancelled bool
	Now            func() time.Time
}

type Service struct {
	store repository.Store
	cache *redisrepo.Cache
	bus   *broadcast.Bus
	uow   *uow.UoW
	cfg   Config
}

// New builds the service. cache and bus may be nil.
func New(
	store repository.Store,
	cache *redisrepo.Cache,
	bus *broadcast.Bus,
	cfg Config,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	if cfg.Policy != PolicyWarn {
		cfg.Policy = PolicyBlock
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Service{
		store: store,
		cache: cache,
		bus:   bus,
		uow:   uow.NewUoW(store),
		cfg:   cfg,
	}
}

type NewBooking struct {
	Start         time.Time
	End           time.Time
	Photographers []uuid.UUID
	Location      string
	CustomerRef   string
	ProjectID     *uuid.UUID
}

// Result is a stored booking together with the conflicts it was stored
// despite. Conflicts is only ever non-empty under PolicyWarn.
type Result struct {
	Booking   domain.Booking   `json:"booking"`
	Conflicts []domain.Booking `json:"conflicts"`
}

type PhotographerAvailability struct {
	Photographer domain.Photographer `json:"photographer"`
	sched.Availability
}

// CreateBooking stores a reserved booking after checking it against the
// bookings that overlap it.
//
// Returns:
//   - error: schedule.ErrInvalidInterval if start does not precede end.
//   - error: schedule.ErrPhotographerNotFound for an unknown photographer.
//   - error: schedule.ErrProjectNotFound for an unknown project.
//   - error: *schedule.DoubleBookingError under PolicyBlock.
func (s *Service) CreateBooking(ctx context.Context, in NewBooking) (Result, error) {
	const op = "service.schedule.CreateBooking"

	now := s.cfg.Now()
	b := domain.Booking{
		ID:            uuid.New(),
		Start:         in.Start,
		End:           in.End,
		Photographers: dedupe(in.Photographers),
		Status:        domain.BookingReserved,
		Location:      in.Location,
		CustomerRef:   in.CustomerRef,
		ProjectID:     in.ProjectID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := b.Validate(); err != nil {
		return Result{}, fmt.Errorf("%s:%w", op, ErrInvalidInterval)
	}

	var res Result

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx repository.Tx,
		after func(uow.AfterCommit),
	) error {
		if err := s.checkPhotographers(ctx, tx, b.Photographers); err != nil {
			return err
		}

		conflicts, err := s.conflicts(ctx, tx, b)
		if err != nil {
			return err
		}

		if err := tx.Bookings().Create(ctx, b); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrBookingConflict
			}
			return err
		}

		if b.ProjectID != nil {
			if err := tx.Projects().AttachBooking(ctx, *b.ProjectID, b.ID); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return ErrProjectNotFound
				}
				return err
			}
		}

		res = Result{Booking: b, Conflicts: conflicts}

		after(s.announce(b, s.days(b), broadcast.EntityCreated))

		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("%s:%w", op, err)
	}

	return res, nil
}

// Reschedule moves a booking to [start, end) and, when photographers is not
// nil, replaces its crew. The booking is re-validated against every other
// booking; its own stored copy is never reported as a conflict.
func (s *Service) Reschedule(
	ctx context.Context,
	id uuid.UUID,
	start, end time.Time,
	photographers []uuid.UUID,
) (Result, error) {
	const op = "service.schedule.Reschedule"

	if !start.Before(end) {
		return Result{}, fmt.Errorf("%s:%w", op, ErrInvalidInterval)
	}

	res, err := s.edit(ctx, id, func(b *domain.Booking) []broadcast.Type {
		types := []broadcast.Type{broadcast.EntityUpdated}
		b.Start, b.End = start, end
		if photographers != nil {
			next := dedupe(photographers)
			if !sameSet(b.Photographers, next) {
				types = append(types, broadcast.ResourceAssigned)
			}
			b.Photographers = next
		}
		return types
	})
	if err != nil {
		return Result{}, fmt.Errorf("%s:%w", op, err)
	}

	return res, nil
}

// AssignPhotographers replaces the crew of a booking after a conflict check.
func (s *Service) AssignPhotographers(ctx context.Context, id uuid.UUID, photographers []uuid.UUID) (Result, error) {
	const op = "service.schedule.AssignPhotographers"

	res, err := s.edit(ctx, id, func(b *domain.Booking) []broadcast.Type {
		b.Photographers = dedupe(photographers)
		return []broadcast.Type{broadcast.ResourceAssigned}
	})
	if err != nil {
		return Result{}, fmt.Errorf("%s:%w", op, err)
	}

	return res, nil
}

func (s *Service) edit(
	ctx context.Context,
	id uuid.UUID,
	change func(b *domain.Booking) []broadcast.Type,
) (Result, error) {
	var res Result

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx repository.Tx,
		after func(uow.AfterCommit),
	) error {
		cur, err := s.getBooking(ctx, tx, id)
		if err != nil {
			return err
		}
		if cur.Status.Final() {
			return ErrFinalStatus
		}

		prevDays := s.days(*cur)

		b := cur.Clone()
		types := change(&b)
		b.UpdatedAt = s.cfg.Now()

		if err := s.checkPhotographers(ctx, tx, b.Photographers); err != nil {
			return err
		}

		conflicts, err := s.conflicts(ctx, tx, b)
		if err != nil {
			return err
		}

		if err := tx.Bookings().Update(ctx, b); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrBookingNotFound
			}
			return err
		}

		res = Result{Booking: b, Conflicts: conflicts}

		after(s.announce(b, union(prevDays, s.days(b)), types...))

		return nil
	})

	return res, err
}

// ChangeStatus moves a booking to status. Cancelled and delivered bookings
// keep their status forever; setting the current status again is a no-op.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (domain.Booking, error) {
	const op = "service.schedule.ChangeStatus"

	if !status.Valid() {
		return domain.Booking{}, fmt.Errorf("%s:%w", op, ErrInvalidStatus)
	}

	var out domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx repository.Tx,
		after func(uow.AfterCommit),
	) error {
		cur, err := s.getBooking(ctx, tx, id)
		if err != nil {
			return err
		}

		out = *cur
		if cur.Status == status {
			return nil
		}
		if cur.Status.Final() {
			return ErrFinalStatus
		}

		out.Status = status
		out.UpdatedAt = s.cfg.Now()
		if err := tx.Bookings().Update(ctx, out); err != nil {
			return err
		}

		after(s.announce(out, s.days(out), broadcast.StatusChanged))

		return nil
	})
	if err != nil {
		return domain.Booking{}, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "service.schedule.Get"

	b, err := s.getBooking(ctx, s.store, id)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return b, nil
}

// Conflicts recomputes the bookings currently conflicting with id.
func (s *Service) Conflicts(ctx context.Context, id uuid.UUID) ([]domain.Booking, error) {
	const op = "service.schedule.Conflicts"

	b, err := s.getBooking(ctx, s.store, id)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	all, err := s.store.Bookings().ListBetween(ctx, b.Start, b.End)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return nonNil(sched.FindConflicts(*b, s.occupying(all))), nil
}

// Calendar returns the bookings overlapping the local day of day, each
// annotated with the bookings it conflicts with right now.
func (s *Service) Calendar(ctx context.Context, day time.Time) ([]sched.Annotated, error) {
	const op = "service.schedule.Calendar"

	view, err := s.dayBookings(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	if len(view) == 0 {
		return []sched.Annotated{}, nil
	}

	// bookings crossing midnight can conflict with bookings outside the day
	all := view
	dayStart, dayEnd := timeslot.DayBounds(day.In(s.cfg.Location))
	from, to := span(view)
	if from.Before(dayStart) || to.After(dayEnd) {
		all, err = s.store.Bookings().ListBetween(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
	}

	out := sched.Annotate(view, s.occupying(all))
	if !s.cfg.CountCancelled {
		for i := range out {
			if out[i].Status == domain.BookingCancelled {
				out[i].ConflictsWith = []uuid.UUID{}
			}
		}
	}

	return out, nil
}

// Availability reports, for every photographer flagged available, how many
// bookings they hold on the local day of day.
func (s *Service) Availability(ctx context.Context, day time.Time) ([]PhotographerAvailability, error) {
	const op = "service.schedule.Availability"

	pool, err := s.photographers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	bookings, err := s.dayBookings(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	dayStart, _ := timeslot.DayBounds(day.In(s.cfg.Location))
	counts := sched.AvailabilityForDate(dayStart, pool, s.occupying(bookings))

	out := make([]PhotographerAvailability, 0, len(counts))
	for _, p := range pool {
		if a, ok := counts[p.ID]; ok {
			out = append(out, PhotographerAvailability{Photographer: p, Availability: a})
		}
	}

	return out, nil
}

func (s *Service) dayBookings(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	dayStart, dayEnd := timeslot.DayBounds(day.In(s.cfg.Location))
	load := func(ctx context.Context) ([]domain.Booking, error) {
		return s.store.Bookings().ListBetween(ctx, dayStart, dayEnd)
	}

	if s.cache == nil {
		return load(ctx)
	}

	return s.cache.DayBookings(ctx, dayStart.Format(timeslot.DateLayout), load)
}

func (s *Service) photographers(ctx context.Context) ([]domain.Photographer, error) {
	if s.cache == nil {
		return s.store.Photographers().List(ctx)
	}

	return s.cache.Photographers(ctx, s.store.Photographers().List)
}

func (s *Service) getBooking(ctx context.Context, tx repository.Tx, id uuid.UUID) (*domain.Booking, error) {
	b, err := tx.Bookings().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return b, nil
}

func (s *Service) checkPhotographers(ctx context.Context, tx repository.Tx, ids []uuid.UUID) error {
	for _, id := range ids {
		if _, err := tx.Photographers().Get(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", id, ErrPhotographerNotFound)
			}
			return err
		}
	}

	return nil
}

// conflicts applies the configured policy to the conflicts of b.
func (s *Service) conflicts(ctx context.Context, tx repository.Tx, b domain.Booking) ([]domain.Booking, error) {
	if len(b.Photographers) == 0 {
		return []domain.Booking{}, nil
	}

	all, err := tx.Bookings().ListBetween(ctx, b.Start, b.End)
	if err != nil {
		return nil, err
	}

	found := sched.FindConflicts(b, s.occupying(all))
	if len(found) > 0 && s.cfg.Policy == PolicyBlock {
		return nil, &DoubleBookingError{Conflicts: found}
	}

	return nonNil(found), nil
}

// occupying drops the bookings that no longer hold their time slot.
func (s *Service) occupying(all []domain.Booking) []domain.Booking {
	if s.cfg.CountCancelled {
		return all
	}
	return sched.WithoutStatus(all, domain.BookingCancelled)
}

func (s *Service) days(b domain.Booking) []string {
	return timeslot.DaysSpanned(b.Start, b.End, s.cfg.Location)
}

func (s *Service) announce(b domain.Booking, days []string, types ...broadcast.Type) uow.AfterCommit {
	return func(ctx context.Context) {
		if s.cache != nil {
			_ = s.cache.InvalidateDays(ctx, days...)
		}

		if s.bus == nil {
			return
		}

		ref := broadcast.EntityRef{
			Entity: "booking",
			ID:     b.ID.String(),
			Status: string(b.Status),
			Days:   days,
		}
		for _, t := range types {
			s.bus.Publish(t, ref)
		}
	}
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func sameSet(a, b []uuid.UUID) bool {
	if len(a) != len(b) {
		return false
	}
	for _, id := range a {
		if !slices.Contains(b, id) {
			return false
		}
	}
	return true
}

func union(a, b []string) []string {
	out := slices.Clone(a)
	for _, s := range b {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}

func span(bookings []domain.Booking) (time.Time, time.Time) {
	from, to := bookings[0].Start, bookings[0].End
	for _, b := range bookings[1:] {
		if b.Start.Before(from) {
			from = b.Start
		}
		if b.End.After(to) {
			to = b.End
		}
	}
	return from, to
}

func nonNil(bs []domain.Booking) []domain.Booking {
	if bs == nil {
		return []domain.Booking{}
	}
	return bs
}

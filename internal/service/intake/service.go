package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/broadcast"
	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/kirinyoku/shootplan/internal/repository"
	redisrepo "github.com/kirinyoku/shootplan/internal/repository/redis"
	"github.com/kirinyoku/shootplan/internal/timeslot"
	"github.com/kirinyoku/shootplan/internal/uow"
)

type Config struct {
	// Location is the studio time zone customers' dates and times are read in.
	Location *time.Location
	// SessionLength is the length of the provisional booking made for a
	// fully decided inquiry.
	SessionLength time.Duration
	Now           func() time.Time
}

type Service struct {
	store   repository.Store
	cache   *redisrepo.Cache
	bus     *broadcast.Bus
	limiter *redisrepo.SlidingWindowLimiter
	uow     *uow.UoW
	cfg     Config
}

// New builds the service. cache, bus and limiter may be nil.
func New(
	store repository.Store,
	cache *redisrepo.Cache,
	bus *broadcast.Bus,
	limiter *redisrepo.SlidingWindowLimiter,
	cfg Config,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	if cfg.SessionLength <= 0 {
		cfg.SessionLength = 2 * time.Hour
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Service{
		store:   store,
		cache:   cache,
		bus:     bus,
		limiter: limiter,
		uow:     uow.NewUoW(store),
		cfg:     cfg,
	}
}

// Preferred is a customer's preferred slot after normalization. Either part
// may be undecided.
type Preferred struct {
	Date timeslot.Date  `json:"date"`
	Time timeslot.Clock `json:"time"`
}

func (p Preferred) Decided() bool {
	return !p.Date.IsUndecided() && !p.Time.IsUndecided()
}

type Inquiry struct {
	Name          string
	Contact       string
	PreferredDate string
	PreferredTime string
	Location      string
}

type Receipt struct {
	Lead      domain.Lead     `json:"lead"`
	Project   domain.Project  `json:"project"`
	Booking   *domain.Booking `json:"booking,omitempty"`
	Preferred Preferred       `json:"preferred"`
}

// Normalize reads free-text date and time input. Empty input and words like
// "미정" are undecided, not errors. Timestamps with an offset are read on the
// studio's clock.
//
// Returns:
//   - error: intake.ErrInvalidDate or intake.ErrInvalidTime, wrapping the
//     *timeslot.ParseError that names the rejected input.
func (s *Service) Normalize(date, clock string) (Preferred, error) {
	const op = "service.intake.Normalize"

	d, err := timeslot.NormalizeDateIn(date, s.cfg.Location)
	if err != nil {
		return Preferred{}, fmt.Errorf("%s:%w: %w", op, ErrInvalidDate, err)
	}

	c, err := timeslot.NormalizeTimeIn(clock, s.cfg.Location)
	if err != nil {
		return Preferred{}, fmt.Errorf("%s:%w: %w", op, ErrInvalidTime, err)
	}

	return Preferred{Date: d, Time: c}, nil
}

// Submit records a customer inquiry as a lead with a project. When the
// preferred date and time are both decided, a reserved booking without
// photographers is made for the slot and linked to the project. rlKey
// identifies the client for rate limiting; an empty key is not limited.
func (s *Service) Submit(ctx context.Context, in Inquiry, rlKey string) (Receipt, error) {
	const op = "service.intake.Submit"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Receipt{}, fmt.Errorf("%s:%w", op, ErrNameRequired)
	}

	pref, err := s.Normalize(in.PreferredDate, in.PreferredTime)
	if err != nil {
		return Receipt{}, fmt.Errorf("%s:%w", op, err)
	}

	if s.limiter != nil && rlKey != "" {
		d, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return Receipt{}, fmt.Errorf("%s:%w", op, err)
		}
		if !d.Allowed {
			return Receipt{}, fmt.Errorf("%s:%w", op, &RateLimitedError{RetryAfter: d.RetryAfter})
		}
	}

	now := s.cfg.Now()
	rec := Receipt{
		Lead: domain.Lead{
			ID:        uuid.New(),
			Name:      name,
			Contact:   strings.TrimSpace(in.Contact),
			Status:    domain.LeadInquiry,
			CreatedAt: now,
		},
		Preferred: pref,
	}
	rec.Project = domain.Project{
		ID:        uuid.New(),
		LeadID:    rec.Lead.ID,
		Status:    domain.ProjectScheduled,
		CreatedAt: now,
	}

	if pref.Decided() {
		start, err := timeslot.At(pref.Date, pref.Time, s.cfg.Location)
		if err != nil {
			return Receipt{}, fmt.Errorf("%s:%w", op, err)
		}
		rec.Booking = &domain.Booking{
			ID:            uuid.New(),
			Start:         start,
			End:           start.Add(s.cfg.SessionLength),
			Photographers: []uuid.UUID{},
			Status:        domain.BookingReserved,
			Location:      strings.TrimSpace(in.Location),
			CustomerRef:   rec.Lead.ID.String(),
			ProjectID:     &rec.Project.ID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		rec.Project.BookingID = &rec.Booking.ID
	}

	err = s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		if err := tx.Leads().Create(ctx, rec.Lead); err != nil {
			return err
		}
		if rec.Booking != nil {
			if err := tx.Bookings().Create(ctx, *rec.Booking); err != nil {
				return err
			}
		}
		if err := tx.Projects().Create(ctx, rec.Project); err != nil {
			return err
		}

		after(s.announce(rec))
		return nil
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("%s:%w", op, err)
	}

	return rec, nil
}

func (s *Service) announce(rec Receipt) uow.AfterCommit {
	return func(ctx context.Context) {
		var days []string
		if rec.Booking != nil {
			days = timeslot.DaysSpanned(rec.Booking.Start, rec.Booking.End, s.cfg.Location)
			if s.cache != nil {
				_ = s.cache.InvalidateDays(ctx, days...)
			}
		}

		if s.bus == nil {
			return
		}

		s.bus.Publish(broadcast.EntityCreated, broadcast.EntityRef{
			Entity: "lead", ID: rec.Lead.ID.String(), Status: string(rec.Lead.Status),
		})
		s.bus.Publish(broadcast.EntityCreated, broadcast.EntityRef{
			Entity: "project", ID: rec.Project.ID.String(), Status: string(rec.Project.Status),
		})
		if rec.Booking != nil {
			s.bus.Publish(broadcast.EntityCreated, broadcast.EntityRef{
				Entity: "booking",
				ID:     rec.Booking.ID.String(),
				Status: string(rec.Booking.Status),
				Days:   days,
			})
		}
	}
}

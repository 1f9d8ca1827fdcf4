package service

import (
	"github.com/kirinyoku/shootplan/internal/broadcast"
	"github.com/kirinyoku/shootplan/internal/payments"
	"github.com/kirinyoku/shootplan/internal/repository"
	redisrepo "github.com/kirinyoku/shootplan/internal/repository/redis"
	"github.com/kirinyoku/shootplan/internal/service/crm"
	"github.com/kirinyoku/shootplan/internal/service/intake"
	"github.com/kirinyoku/shootplan/internal/service/portal"
	"github.com/kirinyoku/shootplan/internal/service/schedule"
)

type Services struct {
	Schedule *schedule.Service
	CRM      *crm.Service
	Intake   *intake.Service
	Portal   *portal.Service
}

type Config struct {
	Schedule schedule.Config
	Intake   intake.Config
}

// NewServices wires the application services. cache, bus and limiter may be
// nil when Redis or a broadcast substrate is not configured.
func NewServices(
	store repository.Store,
	cache *redisrepo.Cache,
	bus *broadcast.Bus,
	limiter *redisrepo.SlidingWindowLimiter,
	checker payments.Checker,
	cfg Config,
) *Services {
	return &Services{
		Schedule: schedule.New(store, cache, bus, cfg.Schedule),
		CRM:      crm.New(store, cache, bus),
		Intake:   intake.New(store, cache, bus, limiter, cfg.Intake),
		Portal:   portal.New(store, checker),
	}
}

package httpgin

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/broadcast"
	redisrepo "github.com/kirinyoku/shootplan/internal/repository/redis"
	"github.com/kirinyoku/shootplan/internal/service"
	"github.com/kirinyoku/shootplan/internal/service/crm"
	"github.com/kirinyoku/shootplan/internal/service/intake"
	"github.com/kirinyoku/shootplan/internal/service/portal"
	"github.com/kirinyoku/shootplan/internal/service/schedule"
	"github.com/kirinyoku/shootplan/internal/timeslot"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SessionFeed hands out live notifications from other sessions.
type SessionFeed interface {
	Listen() (<-chan broadcast.Message, func())
}

type Deps struct {
	// Idempotency may be nil; Idempotency-Key headers are then ignored.
	Idempotency *redisrepo.IdempotencyStore
	// Feed may be nil; the session stream then answers 503.
	Feed SessionFeed
	// Location is the studio time zone used for dates and wall-clock input.
	Location *time.Location
}

func NewRouter(
	svcs *service.Services,
	deps Deps,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	if deps.Location == nil {
		deps.Location = time.Local
	}

	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/sessions/stream", handleSessionStream(deps.Feed))
	r.GET("/normalize", handleNormalize(svcs))

	// Admin console
	// TODO: put the admin group behind staff authentication once accounts exist
	admin := r.Group("/admin")
	{
		admin.POST("/photographers", handleCreatePhotographer(svcs))
		admin.GET("/photographers", handleListPhotographers(svcs))
		admin.PATCH("/photographers/:id/availability", handleSetAvailability(svcs))

		admin.POST("/bookings", handleCreateBooking(svcs, deps))
		admin.GET("/bookings/:id", handleGetBooking(svcs))
		admin.PATCH("/bookings/:id/schedule", handleReschedule(svcs, deps))
		admin.PATCH("/bookings/:id/photographers", handleAssignPhotographers(svcs))
		admin.PATCH("/bookings/:id/status", handleChangeBookingStatus(svcs))
		admin.GET("/bookings/:id/conflicts", handleBookingConflicts(svcs))

		admin.GET("/calendar", handleCalendar(svcs, deps))
		admin.GET("/availability", handleAvailability(svcs, deps))

		admin.POST("/leads", handleCreateLead(svcs))
		admin.GET("/leads/:id", handleGetLead(svcs))
		admin.PATCH("/leads/:id/status", handleSetLeadStatus(svcs))

		admin.POST("/projects", handleCreateProject(svcs))
		admin.GET("/projects/:id", handleGetProject(svcs))
		admin.PATCH("/projects/:id/status", handleSetProjectStatus(svcs))
		admin.POST("/projects/:id/payment", handleRecordPayment(svcs))
		admin.PUT("/projects/:id/booking", handleAttachBooking(svcs))
	}

	// Customer portal
	customer := r.Group("/portal")
	{
		customer.POST("/inquiries", handleSubmitInquiry(svcs, deps))
		customer.GET("/leads/:id/journey", handleJourney(svcs))
	}

	return r
}

// --- Helpers ---

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// parseDayQuery reads ?date= in any format the normalizer accepts and
// returns local midnight of that day. A missing date means today.
func parseDayQuery(c *gin.Context, loc *time.Location) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		d, _ := timeslot.DayBounds(time.Now().In(loc))
		return d, true
	}

	d, err := timeslot.NormalizeDateIn(raw, loc)
	if err != nil {
		badRequest(c, err.Error())
		return time.Time{}, false
	}

	day, err := d.In(loc)
	if err != nil {
		badRequest(c, "date must be decided")
		return time.Time{}, false
	}

	return day, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// parseErrMessage names the rejected input without the op chain.
func parseErrMessage(err, sentinel error) string {
	var pe *timeslot.ParseError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%s: %q", sentinel, pe.Input)
	}
	return sentinel.Error()
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var dbe *schedule.DoubleBookingError
	if errors.As(err, &dbe) {
		c.JSON(http.StatusConflict, ConflictResponse{
			Error:     "photographer double-booked",
			Conflicts: dbe.Conflicts,
		})
		return
	}

	var rle *intake.RateLimitedError
	if errors.As(err, &rle) {
		c.Header("Retry-After", strconv.Itoa(int(rle.RetryAfter.Seconds())+1))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
		return
	}

	switch {
	// schedule service
	case errors.Is(err, schedule.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
	case errors.Is(err, schedule.ErrPhotographerNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "photographer not found"})
	case errors.Is(err, schedule.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "project not found"})
	case errors.Is(err, schedule.ErrInvalidInterval):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start must precede end"})
	case errors.Is(err, schedule.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown booking status"})
	case errors.Is(err, schedule.ErrFinalStatus):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking status is final"})
	case errors.Is(err, schedule.ErrBookingConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "booking conflict"})
	// crm service
	case errors.Is(err, crm.ErrPhotographerNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "photographer not found"})
	case errors.Is(err, crm.ErrLeadNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "lead not found"})
	case errors.Is(err, crm.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "project not found"})
	case errors.Is(err, crm.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
	case errors.Is(err, crm.ErrInvalidAvailability):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown availability"})
	case errors.Is(err, crm.ErrInvalidLeadStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown lead status"})
	case errors.Is(err, crm.ErrInvalidProjectStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown project status"})
	case errors.Is(err, crm.ErrNameRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
	// intake service
	case errors.Is(err, intake.ErrInvalidDate):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: parseErrMessage(err, intake.ErrInvalidDate)})
	case errors.Is(err, intake.ErrInvalidTime):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: parseErrMessage(err, intake.ErrInvalidTime)})
	case errors.Is(err, intake.ErrNameRequired):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
	// portal service
	case errors.Is(err, portal.ErrLeadNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "lead not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

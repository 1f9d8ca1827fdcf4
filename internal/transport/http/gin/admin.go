package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/domain"
	redisrepo "github.com/kirinyoku/shootplan/internal/repository/redis"
	"github.com/kirinyoku/shootplan/internal/service"
	"github.com/kirinyoku/shootplan/internal/service/schedule"
)

// --- Photographers ---

// @Summary  Register photographer
// @Param    req body  CreatePhotographerRequest true "payload"
// @Success  201 {object} domain.Photographer
// @Failure  400 {object} ErrorResponse
// @Router   /admin/photographers [post]
func handleCreatePhotographer(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePhotographerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		p, err := svcs.CRM.CreatePhotographer(c.Request.Context(), req.Name, domain.Availability(req.Availability))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, p)
	}
}

// @Summary  List photographers
// @Success  200 {array} domain.Photographer
// @Router   /admin/photographers [get]
func handleListPhotographers(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ps, err := svcs.CRM.ListPhotographers(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, ps, "no-cache", true)
	}
}

// @Summary  Set photographer availability
// @Param    id  path  string  true  "Photographer ID"
// @Param    req body  SetAvailabilityRequest true "payload"
// @Success  200 {object} domain.Photographer
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /admin/photographers/{id}/availability [patch]
func handleSetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		var req SetAvailabilityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		p, err := svcs.CRM.SetAvailability(c.Request.Context(), id, domain.Availability(req.Availability))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, p)
	}
}

// --- Bookings ---

// @Summary  Create booking (idempotent)
// @Param    req body  CreateBookingRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} schedule.Result
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse "photographer or project not found"
// @Failure  409 {object} ConflictResponse "photographer double-booked / idem in progress"
// @Router   /admin/bookings [post]
func handleCreateBooking(svcs *service.Services, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		start, err := parseInstant(req.Start, deps.Location)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		end, err := parseInstant(req.End, deps.Location)
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		crew, err := parseUUIDs(req.Photographers)
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		in := schedule.NewBooking{
			Start:         start,
			End:           end,
			Photographers: crew,
			Location:      req.Location,
			CustomerRef:   req.CustomerRef,
		}
		if req.ProjectID != "" {
			pid := uuid.MustParse(req.ProjectID)
			in.ProjectID = &pid
		}

		idempotent(c, deps.Idempotency, redisrepo.IdemBookings, func() (any, bool) {
			res, err := svcs.Schedule.CreateBooking(c.Request.Context(), in)
			if err != nil {
				respondErr(c, err)
				return nil, false
			}
			return res, true
		})
	}
}

// @Summary  Get booking
// @Param    id  path  string  true  "Booking ID"
// @Success  200  {object}  domain.Booking
// @Failure  404  {object}  ErrorResponse
// @Router   /admin/bookings/{id} [get]
func handleGetBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		b, err := svcs.Schedule.Get(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, b)
	}
}

// @Summary  Reschedule booking
// @Param    id  path  string  true  "Booking ID"
// @Param    req body  RescheduleRequest true "payload"
// @Success  200 {object} schedule.Result
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ConflictResponse
// @Router   /admin/bookings/{id}/schedule [patch]
func handleReschedule(svcs *service.Services, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		var req RescheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		start, err := parseInstant(req.Start, deps.Location)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		end, err := parseInstant(req.End, deps.Location)
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		crew, err := parseUUIDs(req.Photographers)
		if err != nil {
			badRequest(c, err.Error())
			return
		}

		res, err := svcs.Schedule.Reschedule(c.Request.Context(), id, start, end, crew)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

// @Summary  Assign photographers
// @Param    id  path  string  true  "Booking ID"
// @Param    req body  AssignPhotographersRequest true "payload"
// @Success  200 {object} schedule.Result
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ConflictResponse
// @Router   /admin/bookings/{id}/photographers [patch]
func handleAssignPhotographers(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		var req AssignPhotographersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		crew, err := parseUUIDs(req.Photographers)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		if crew == nil {
			crew = []uuid.UUID{}
		}

		res, err := svcs.Schedule.AssignPhotographers(c.Request.Context(), id, crew)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, res)
	}
}

// @Summary  Change booking status
// @Param    id  path  string  true  "Booking ID"
// @Param    req body  StatusRequest true "payload"
// @Success  200 {object} domain.Booking
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "status is final"
// @Router   /admin/bookings/{id}/status [patch]
func handleChangeBookingStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		var req StatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		b, err := svcs.Schedule.ChangeStatus(c.Request.Context(), id, domain.BookingStatus(req.Status))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, b)
	}
}

// @Summary  List conflicts of a booking
// @Param    id  path  string  true  "Booking ID"
// @Success  200 {array} domain.Booking
// @Failure  404 {object} ErrorResponse
// @Router   /admin/bookings/{id}/conflicts [get]
func handleBookingConflicts(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		conflicts, err := svcs.Schedule.Conflicts(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, conflicts)
	}
}

// @Summary  Day calendar with conflict annotations
// @Param    date  query  string  false  "day, any accepted date format; defaults to today"
// @Success  200 {array} schedule.Annotated
// @Failure  400 {object} ErrorResponse
// @Router   /admin/calendar [get]
func handleCalendar(svcs *service.Services, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, ok := parseDayQuery(c, deps.Location)
		if !ok {
			return
		}

		out, err := svcs.Schedule.Calendar(c.Request.Context(), day)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, out, "no-cache", true)
	}
}

// @Summary  Photographer availability for a day
// @Param    date  query  string  false  "day, any accepted date format; defaults to today"
// @Success  200 {array} schedule.PhotographerAvailability
// @Failure  400 {object} ErrorResponse
// @Router   /admin/availability [get]
func handleAvailability(svcs *service.Services, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		day, ok := parseDayQuery(c, deps.Location)
		if !ok {
			return
		}

		out, err := svcs.Schedule.Availability(c.Request.Context(), day)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, out, "no-cache", true)
	}
}

// --- Leads ---

// @Summary  Create lead
// @Param    req body  CreateLeadRequest true "payload"
// @Success  201 {object} domain.Lead
// @Failure  400 {object} ErrorResponse
// @Router   /admin/leads [post]
func handleCreateLead(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateLeadRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		l, err := svcs.CRM.CreateLead(c.Request.Context(), req.Name, req.Contact)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, l)
	}
}

// @Summary  Get lead
// @Param    id  path  string  true  "Lead ID"
// @Success  200 {object} domain.Lead
// @Failure  404 {object} ErrorResponse
// @Router   /admin/leads/{id} [get]
func handleGetLead(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		l, err := svcs.CRM.GetLead(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, l)
	}
}

// @Summary  Set lead status
// @Param    id  path  string  true  "Lead ID"
// @Param    req body  StatusRequest true "payload"
// @Success  204
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /admin/leads/{id}/status [patch]
func handleSetLeadStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		var req StatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		respondErr(c, svcs.CRM.SetLeadStatus(c.Request.Context(), id, domain.LeadStatus(req.Status)))
	}
}

// --- Projects ---

// @Summary  Create project for a lead
// @Param    req body  CreateProjectRequest true "payload"
// @Success  201 {object} domain.Project
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse "lead not found"
// @Router   /admin/projects [post]
func handleCreateProject(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProjectRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		p, err := svcs.CRM.CreateProject(c.Request.Context(), uuid.MustParse(req.LeadID))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, p)
	}
}

// @Summary  Get project
// @Param    id  path  string  true  "Project ID"
// @Success  200 {object} domain.Project
// @Failure  404 {object} ErrorResponse
// @Router   /admin/projects/{id} [get]
func handleGetProject(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		p, err := svcs.CRM.GetProject(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, p)
	}
}

// @Summary  Set project status
// @Param    id  path  string  true  "Project ID"
// @Param    req body  StatusRequest true "payload"
// @Success  204
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Router   /admin/projects/{id}/status [patch]
func handleSetProjectStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		var req StatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		respondErr(c, svcs.CRM.SetProjectStatus(c.Request.Context(), id, domain.ProjectStatus(req.Status)))
	}
}

// @Summary  Record payment state
// @Param    id  path  string  true  "Project ID"
// @Param    req body  PaymentRequest true "payload"
// @Success  200 {object} domain.Project
// @Failure  404 {object} ErrorResponse
// @Router   /admin/projects/{id}/payment [post]
func handleRecordPayment(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		var req PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		p, err := svcs.CRM.RecordPayment(c.Request.Context(), id, req.Completed, req.PaymentIntentID)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, p)
	}
}

// @Summary  Link a booking to a project
// @Param    id  path  string  true  "Project ID"
// @Param    req body  AttachBookingRequest true "payload"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /admin/projects/{id}/booking [put]
func handleAttachBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		var req AttachBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		respondErr(c, svcs.CRM.AttachBooking(c.Request.Context(), id, uuid.MustParse(req.BookingID)))
	}
}

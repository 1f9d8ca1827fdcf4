package httpgin

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/shootplan/internal/broadcast"
	redisrepo "github.com/kirinyoku/shootplan/internal/repository/redis"
	"github.com/kirinyoku/shootplan/internal/service"
	"github.com/kirinyoku/shootplan/internal/service/intake"
)

const streamPing = 25 * time.Second

// @Summary  Submit inquiry (idempotent)
// @Param    req body  InquiryRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} intake.Receipt
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "idem in progress"
// @Failure  422 {object} ErrorResponse "preferred date or time not understood"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /portal/inquiries [post]
func handleSubmitInquiry(svcs *service.Services, deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req InquiryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		in := intake.Inquiry{
			Name:          req.Name,
			Contact:       req.Contact,
			PreferredDate: req.PreferredDate,
			PreferredTime: req.PreferredTime,
			Location:      req.Location,
		}

		idempotent(c, deps.Idempotency, redisrepo.IdemInquiries, func() (any, bool) {
			rec, err := svcs.Intake.Submit(c.Request.Context(), in, "ip:"+c.ClientIP())
			if err != nil {
				respondErr(c, err)
				return nil, false
			}
			return rec, true
		})
	}
}

// @Summary  Customer journey step
// @Param    id  path  string  true  "Lead ID"
// @Success  200 {object} portal.Journey
// @Failure  404 {object} ErrorResponse
// @Router   /portal/leads/{id}/journey [get]
func handleJourney(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		j, err := svcs.Portal.Journey(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.Header("Cache-Control", "no-store")
		c.JSON(http.StatusOK, j)
	}
}

// @Summary  Normalize free-text date and time
// @Param    date  query  string  false  "e.g. 2025년 6월 15일"
// @Param    time  query  string  false  "e.g. 오후 2시반"
// @Success  200 {object} NormalizeResponse
// @Failure  422 {object} ErrorResponse
// @Router   /normalize [get]
func handleNormalize(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svcs.Intake.Normalize(c.Query("date"), c.Query("time"))
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, NormalizeResponse{
			Date:    p.Date.String(),
			Time:    p.Time.String(),
			Decided: p.Decided(),
		})
	}
}

// @Summary  Live notifications from other sessions (server-sent events)
// @Param    types  query  string  false  "comma-separated message types; all when empty"
// @Produce  text/event-stream
// @Success  200
// @Failure  503 {object} ErrorResponse
// @Router   /sessions/stream [get]
func handleSessionStream(feed SessionFeed) gin.HandlerFunc {
	return func(c *gin.Context) {
		if feed == nil {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "session stream unavailable"})
			return
		}

		want := map[broadcast.Type]bool{}
		for _, t := range strings.Split(c.Query("types"), ",") {
			if t = strings.TrimSpace(t); t != "" {
				want[broadcast.Type(t)] = true
			}
		}

		msgs, stop := feed.Listen()
		defer stop()

		ping := time.NewTicker(streamPing)
		defer ping.Stop()

		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no")
		c.SSEvent("ready", gin.H{"ts": time.Now().UnixMilli()})
		c.Writer.Flush()

		ctx := c.Request.Context()
		c.Stream(func(io.Writer) bool {
			select {
			case <-ctx.Done():
				return false
			case m, ok := <-msgs:
				if !ok {
					return false
				}
				if len(want) == 0 || want[m.Type] {
					c.SSEvent(string(m.Type), m)
				}
				return true
			case <-ping.C:
				c.SSEvent("ping", time.Now().UnixMilli())
				return true
			}
		})
	}
}

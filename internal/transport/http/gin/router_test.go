package httpgin

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kirinyoku/shootplan/internal/broadcast"
	"github.com/kirinyoku/shootplan/internal/domain"
	"github.com/kirinyoku/shootplan/internal/repository/memory"
	"github.com/kirinyoku/shootplan/internal/service"
	"github.com/kirinyoku/shootplan/internal/service/intake"
	"github.com/kirinyoku/shootplan/internal/service/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, feed SessionFeed) *gin.Engine {
	t.Helper()

	svcs := service.NewServices(memory.NewStore(), nil, nil, nil, nil, service.Config{
		Schedule: schedule.Config{Location: time.UTC},
		Intake:   intake.Config{Location: time.UTC},
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(svcs, Deps{Feed: feed, Location: time.UTC}, logger)
}

func do(t *testing.T, r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func createPhotographer(t *testing.T, r http.Handler, name string) domain.Photographer {
	t.Helper()

	w := do(t, r, http.MethodPost, "/admin/photographers", CreatePhotographerRequest{Name: name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.Photographer](t, w)
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestBookings_DoubleBookingIsRejected(t *testing.T) {
	r := newTestRouter(t, nil)
	p := createPhotographer(t, r, "Kim")

	first := do(t, r, http.MethodPost, "/admin/bookings", CreateBookingRequest{
		Start:         "2025-06-15T09:00:00Z",
		End:           "2025-06-15T12:00:00Z",
		Photographers: []string{p.ID.String()},
	})
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())
	created := decode[schedule.Result](t, first)

	second := do(t, r, http.MethodPost, "/admin/bookings", CreateBookingRequest{
		Start:         "2025-06-15 11:00",
		End:           "2025-06-15 14:00",
		Photographers: []string{p.ID.String()},
	})
	require.Equal(t, http.StatusConflict, second.Code, second.Body.String())

	resp := decode[ConflictResponse](t, second)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, created.Booking.ID, resp.Conflicts[0].ID)

	// touching intervals do not conflict
	third := do(t, r, http.MethodPost, "/admin/bookings", CreateBookingRequest{
		Start:         "2025-06-15T12:00:00Z",
		End:           "2025-06-15T15:00:00Z",
		Photographers: []string{p.ID.String()},
	})
	assert.Equal(t, http.StatusCreated, third.Code, third.Body.String())
}

func TestBookings_BadInput(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name string
		body CreateBookingRequest
		want int
	}{
		{"end before start", CreateBookingRequest{Start: "2025-06-15T12:00:00Z", End: "2025-06-15T09:00:00Z"}, http.StatusBadRequest},
		{"unparseable time", CreateBookingRequest{Start: "tomorrow", End: "2025-06-15T09:00:00Z"}, http.StatusBadRequest},
		{"bad photographer id", CreateBookingRequest{Start: "2025-06-15T09:00:00Z", End: "2025-06-15T10:00:00Z", Photographers: []string{"x"}}, http.StatusBadRequest},
		{"unknown photographer", CreateBookingRequest{Start: "2025-06-15T09:00:00Z", End: "2025-06-15T10:00:00Z", Photographers: []string{uuid.NewString()}}, http.StatusNotFound},
		{"unknown project", CreateBookingRequest{Start: "2025-06-15T09:00:00Z", End: "2025-06-15T10:00:00Z", ProjectID: uuid.NewString()}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/admin/bookings", tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/admin/bookings/not-a-uuid", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/admin/bookings/"+uuid.NewString(), nil).Code)
}

func TestBookings_StatusIsFinalAfterCancel(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/admin/bookings", CreateBookingRequest{
		Start: "2025-06-15T09:00:00Z",
		End:   "2025-06-15T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decode[schedule.Result](t, w).Booking.ID.String()

	w = do(t, r, http.MethodPatch, "/admin/bookings/"+id+"/status", StatusRequest{Status: "teleported"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPatch, "/admin/bookings/"+id+"/status", StatusRequest{Status: string(domain.BookingCancelled)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.BookingCancelled, decode[domain.Booking](t, w).Status)

	w = do(t, r, http.MethodPatch, "/admin/bookings/"+id+"/status", StatusRequest{Status: string(domain.BookingReserved)})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookings_AssignAndConflicts(t *testing.T) {
	r := newTestRouter(t, nil)
	p := createPhotographer(t, r, "Lee")

	mk := func(start, end string, crew ...string) string {
		w := do(t, r, http.MethodPost, "/admin/bookings", CreateBookingRequest{Start: start, End: end, Photographers: crew})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		return decode[schedule.Result](t, w).Booking.ID.String()
	}

	a := mk("2025-06-15T09:00:00Z", "2025-06-15T12:00:00Z", p.ID.String())
	b := mk("2025-06-15T10:00:00Z", "2025-06-15T11:00:00Z")

	w := do(t, r, http.MethodPatch, "/admin/bookings/"+b+"/photographers", AssignPhotographersRequest{Photographers: []string{p.ID.String()}})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/admin/bookings/"+a+"/conflicts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]domain.Booking](t, w))

	w = do(t, r, http.MethodPatch, "/admin/bookings/"+b+"/schedule", RescheduleRequest{
		Start:         "2025-06-15T13:00:00Z",
		End:           "2025-06-15T14:00:00Z",
		Photographers: []string{p.ID.String()},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[schedule.Result](t, w)
	assert.Equal(t, []uuid.UUID{p.ID}, res.Booking.Photographers)
}

func TestCalendar_ETag(t *testing.T) {
	r := newTestRouter(t, nil)
	p := createPhotographer(t, r, "Park")

	w := do(t, r, http.MethodPost, "/admin/bookings", CreateBookingRequest{
		Start:         "2025-06-15T09:00:00Z",
		End:           "2025-06-15T12:00:00Z",
		Photographers: []string{p.ID.String()},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/admin/calendar?date="+url.QueryEscape("2025년 6월 15일"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode[[]json.RawMessage](t, w), 1)

	tag := w.Header().Get("ETag")
	require.NotEmpty(t, tag)

	w = do(t, r, http.MethodGet, "/admin/calendar?date=2025-06-15", nil, "If-None-Match", tag)
	assert.Equal(t, http.StatusNotModified, w.Code)

	w = do(t, r, http.MethodGet, "/admin/calendar?date=2025-06-16", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]json.RawMessage](t, w))

	// a zoned timestamp names the studio day it falls on
	w = do(t, r, http.MethodGet, "/admin/calendar?date="+url.QueryEscape("2025-06-14T20:00:00-05:00"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode[[]json.RawMessage](t, w), 1)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/admin/calendar?date=someday", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/admin/calendar?date="+url.QueryEscape("미정"), nil).Code)
}

func TestAvailability(t *testing.T) {
	r := newTestRouter(t, nil)
	p := createPhotographer(t, r, "Choi")
	away := createPhotographer(t, r, "Jung")

	w := do(t, r, http.MethodPatch, "/admin/photographers/"+away.ID.String()+"/availability", SetAvailabilityRequest{Availability: string(domain.OnLeave)})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/admin/bookings", CreateBookingRequest{
		Start:         "2025-06-15T09:00:00Z",
		End:           "2025-06-15T12:00:00Z",
		Photographers: []string{p.ID.String()},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodGet, "/admin/availability?date=2025-06-15", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got := decode[[]schedule.PhotographerAvailability](t, w)
	require.Len(t, got, 1)
	assert.Equal(t, p.ID, got[0].Photographer.ID)
	assert.Equal(t, 1, got[0].BookedCount)
	assert.False(t, got[0].IsFree)
}

func TestPortal_InquiryToJourney(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/portal/inquiries", InquiryRequest{
		Name:          "Han",
		Contact:       "010-0000-0000",
		PreferredDate: "2025.06.15",
		PreferredTime: "오후 2시",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	rec := decode[intake.Receipt](t, w)
	require.NotNil(t, rec.Booking)
	assert.Equal(t, time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC), rec.Booking.Start.UTC())

	journey := func() map[string]any {
		w := do(t, r, http.MethodGet, "/portal/leads/"+rec.Lead.ID.String()+"/journey", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return decode[map[string]any](t, w)
	}

	assert.EqualValues(t, 0, journey()["step"])

	w = do(t, r, http.MethodPatch, "/admin/leads/"+rec.Lead.ID.String()+"/status", StatusRequest{Status: string(domain.LeadContracted)})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	assert.EqualValues(t, 2, journey()["step"])

	w = do(t, r, http.MethodPost, "/admin/projects/"+rec.Project.ID.String()+"/payment", PaymentRequest{Completed: true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 3, journey()["step"])

	w = do(t, r, http.MethodPatch, "/admin/projects/"+rec.Project.ID.String()+"/status", StatusRequest{Status: string(domain.ProjectEditing)})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	j := journey()
	assert.EqualValues(t, 5, j["step"])
	assert.Equal(t, "editing", j["label"])

	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/portal/leads/"+uuid.NewString()+"/journey", nil).Code)
}

func TestPortal_InquiryValidation(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/portal/inquiries", InquiryRequest{Name: "Han", PreferredDate: "next friday"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(t, r, http.MethodPost, "/portal/inquiries", map[string]string{"contact": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// undecided preferences still record the lead, without a booking
	w = do(t, r, http.MethodPost, "/portal/inquiries", InquiryRequest{Name: "Han", PreferredDate: "미정"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Nil(t, decode[intake.Receipt](t, w).Booking)
}

func TestProjects_CreateAndAttach(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodPost, "/admin/projects", CreateProjectRequest{LeadID: uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/admin/leads", CreateLeadRequest{Name: "Yoon"})
	require.Equal(t, http.StatusCreated, w.Code)
	lead := decode[domain.Lead](t, w)

	w = do(t, r, http.MethodPost, "/admin/projects", CreateProjectRequest{LeadID: lead.ID.String()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	project := decode[domain.Project](t, w)

	w = do(t, r, http.MethodPost, "/admin/bookings", CreateBookingRequest{
		Start: "2025-06-20T09:00:00Z",
		End:   "2025-06-20T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	booking := decode[schedule.Result](t, w).Booking

	w = do(t, r, http.MethodPut, "/admin/projects/"+project.ID.String()+"/booking", AttachBookingRequest{BookingID: booking.ID.String()})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(t, r, http.MethodGet, "/admin/projects/"+project.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[domain.Project](t, w)
	require.NotNil(t, got.BookingID)
	assert.Equal(t, booking.ID, *got.BookingID)
}

func TestNormalize(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/normalize?date="+url.QueryEscape("2025년 6월 15일 (일)")+"&time="+url.QueryEscape("오후 2시반"), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, NormalizeResponse{Date: "2025-06-15", Time: "14:30", Decided: true}, decode[NormalizeResponse](t, w))

	w = do(t, r, http.MethodGet, "/normalize?date="+url.QueryEscape("미정"), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[NormalizeResponse](t, w).Decided)

	w = do(t, r, http.MethodGet, "/normalize?time=25:00", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRespondErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusNoContent},
		{"double booking", &schedule.DoubleBookingError{}, http.StatusConflict},
		{"rate limited", &intake.RateLimitedError{RetryAfter: 3 * time.Second}, http.StatusTooManyRequests},
		{"final status", schedule.ErrFinalStatus, http.StatusConflict},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondErr(c, tt.err)
			c.Writer.WriteHeaderNow()

			assert.Equal(t, tt.want, w.Code)
		})
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondErr(c, &intake.RateLimitedError{RetryAfter: 3 * time.Second})
	assert.Equal(t, "4", w.Header().Get("Retry-After"))
}

type fakeFeed struct {
	ch chan broadcast.Message
}

func (f *fakeFeed) Listen() (<-chan broadcast.Message, func()) {
	return f.ch, func() {}
}

func TestSessionStream(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, do(t, newTestRouter(t, nil), http.MethodGet, "/sessions/stream", nil).Code)

	feed := &fakeFeed{ch: make(chan broadcast.Message, 2)}
	srv := httptest.NewServer(newTestRouter(t, feed))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/stream?types=status-changed", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	feed.ch <- broadcast.Message{Type: broadcast.EntityCreated, SenderID: "filtered"}
	feed.ch <- broadcast.Message{Type: broadcast.StatusChanged, SenderID: "tab-2"}

	sc := bufio.NewScanner(resp.Body)
	var events []string
	for sc.Scan() {
		line := sc.Text()
		if ev, ok := strings.CutPrefix(line, "event:"); ok {
			events = append(events, strings.TrimSpace(ev))
		}
		if strings.HasPrefix(line, "data:") && strings.Contains(line, "tab-2") {
			break
		}
	}

	assert.Equal(t, []string{"ready", string(broadcast.StatusChanged)}, events)
}

func TestETagMatches(t *testing.T) {
	tag := `W/"abc"`

	assert.True(t, etagMatches(`W/"abc"`, tag))
	assert.True(t, etagMatches(`"abc"`, tag))
	assert.True(t, etagMatches(`"zzz", W/"abc"`, tag))
	assert.True(t, etagMatches(`*`, tag))
	assert.False(t, etagMatches(``, tag))
	assert.False(t, etagMatches(`"abd"`, tag))
}

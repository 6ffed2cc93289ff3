package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltworks/internal/dashboard/service"
	"voltworks/internal/guard"
	"voltworks/internal/session"
	httputil "voltworks/pkg/http"
	"voltworks/pkg/model"
)

type staffMockService struct {
	mockAppointmentService
	allFunc    func(ctx context.Context) ([]service.AppointmentView, error)
	rejectFunc func(ctx context.Context, id, reason string) (*service.AppointmentView, error)
}

func (m *staffMockService) All(ctx context.Context) ([]service.AppointmentView, error) {
	if m.allFunc != nil {
		return m.allFunc(ctx)
	}
	return nil, nil
}

func (m *staffMockService) Reject(ctx context.Context, id, reason string) (*service.AppointmentView, error) {
	if m.rejectFunc != nil {
		return m.rejectFunc(ctx, id, reason)
	}
	return &service.AppointmentView{}, nil
}

func staffContext(r *http.Request) *http.Request {
	snapshot := session.Snapshot{
		User:          &model.User{ID: "staff-1", UserType: model.UserTypeEmployee, Role: model.RoleStaff},
		Authenticated: true,
	}
	return r.WithContext(guard.WithSession(r.Context(), snapshot, "sess-staff"))
}

func newStaffRouter(appointments service.AppointmentService) *httprouter.Router {
	log := testLogger()
	views := service.NewViewRegistry(session.NewStore(nil, nil, time.Hour, log), 10, 0)

	h := NewStaffHandler(appointments, nil, views, 10, log)
	router := httprouter.New()
	h.RegisterRoutes(router)
	return router
}

func TestReject_RequiresReason(t *testing.T) {
	called := false
	mock := &staffMockService{
		rejectFunc: func(context.Context, string, string) (*service.AppointmentView, error) {
			called = true
			return &service.AppointmentView{}, nil
		},
	}
	router := newStaffRouter(mock)

	req := staffContext(httptest.NewRequest(http.MethodPost,
		"/api/v1/staff/appointments/apt-1/reject", strings.NewReader(`{"reason":"  "}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)
}

func TestReject_RelaysReason(t *testing.T) {
	var gotID, gotReason string
	mock := &staffMockService{
		rejectFunc: func(_ context.Context, id, reason string) (*service.AppointmentView, error) {
			gotID, gotReason = id, reason
			return &service.AppointmentView{StatusKey: "rejected"}, nil
		},
	}
	router := newStaffRouter(mock)

	req := staffContext(httptest.NewRequest(http.MethodPost,
		"/api/v1/staff/appointments/apt-1/reject", strings.NewReader(`{"reason":"no parts in stock"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "apt-1", gotID)
	assert.Equal(t, "no parts in stock", gotReason)
}

// The live table endpoint keeps view state on the server between calls:
// the search commit survives into the next request, and changing a filter
// resets the page.
func TestAppointmentsView_StatePersistsAcrossRequests(t *testing.T) {
	mock := &staffMockService{
		allFunc: func(context.Context) ([]service.AppointmentView, error) {
			return bookingViews("pending", "confirmed", "pending"), nil
		},
	}
	router := newStaffRouter(mock)

	post := func(body string) httputil.PageResponse {
		req := staffContext(httptest.NewRequest(http.MethodPost,
			"/api/v1/staff/views/appointments", strings.NewReader(body)))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var page httputil.PageResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		return page
	}

	page := post(`{"filters":{"status":"pending"}}`)
	assert.Equal(t, 2, page.TotalCount)

	// No update in the body; the filter from the previous request still
	// applies.
	page = post(`{}`)
	assert.Equal(t, 2, page.TotalCount)

	page = post(`{"filters":{"status":"all"}}`)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 1, page.Page)
}

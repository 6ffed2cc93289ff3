package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltworks/internal/booking"
	"voltworks/internal/querycache"
	"voltworks/internal/status"
	"voltworks/internal/uistate"
	apperrors "voltworks/pkg/errors"
	"voltworks/pkg/logger"
	"voltworks/pkg/model"
)

type fakeAppointmentAPI struct {
	listCalls    int
	appointments []model.Appointment
	lastAction   string
}

func (f *fakeAppointmentAPI) List(context.Context) ([]model.Appointment, error) {
	f.listCalls++
	return f.appointments, nil
}

func (f *fakeAppointmentAPI) ListByCustomer(_ context.Context, customerID string) ([]model.Appointment, error) {
	f.listCalls++
	var out []model.Appointment
	for _, a := range f.appointments {
		if a.Customer.ID == customerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentAPI) ListByTechnician(_ context.Context, technicianID string) ([]model.Appointment, error) {
	f.listCalls++
	var out []model.Appointment
	for _, a := range f.appointments {
		if a.Technician != nil && a.Technician.ID == technicianID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentAPI) GetByID(_ context.Context, id string) (*model.Appointment, error) {
	for _, a := range f.appointments {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentAPI) Create(_ context.Context, _ *model.BookingRequest) (*model.Appointment, error) {
	f.lastAction = "create"
	created := model.Appointment{ID: "apt-new", Status: "PENDING", Customer: model.CustomerRef{ID: "cust-1"}}
	f.appointments = append(f.appointments, created)
	return &created, nil
}

func (f *fakeAppointmentAPI) action(verb, id, nextStatus string) (*model.Appointment, error) {
	f.lastAction = verb
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].Status = nextStatus
			a := f.appointments[i]
			return &a, nil
		}
	}
	return &model.Appointment{ID: id, Status: nextStatus}, nil
}

func (f *fakeAppointmentAPI) Confirm(_ context.Context, id string) (*model.Appointment, error) {
	return f.action("confirm", id, "CONFIRMED")
}

func (f *fakeAppointmentAPI) Reject(_ context.Context, id, _ string) (*model.Appointment, error) {
	return f.action("reject", id, "REJECTED")
}

func (f *fakeAppointmentAPI) Assign(_ context.Context, id, _ string) (*model.Appointment, error) {
	return f.action("assign", id, "TECHNICIAN_ASSIGNED")
}

func (f *fakeAppointmentAPI) Start(_ context.Context, id string) (*model.Appointment, error) {
	return f.action("start", id, "MAINTENANCE_IN_PROGRESS")
}

func (f *fakeAppointmentAPI) Complete(_ context.Context, id string) (*model.Appointment, error) {
	return f.action("complete", id, "MAINTENANCE_COMPLETE")
}

func (f *fakeAppointmentAPI) Cancel(_ context.Context, id string) (*model.Appointment, error) {
	return f.action("cancel", id, "CANCELLED")
}

type fakePaymentAPI struct {
	calls int
}

func (f *fakePaymentAPI) Create(_ context.Context, req *model.PaymentRequest) (*model.PaymentResult, error) {
	f.calls++
	return &model.PaymentResult{InvoiceID: "inv-1", Status: "paid"}, nil
}

type memUIState struct {
	values map[string]json.RawMessage
}

func newMemUIState() *memUIState {
	return &memUIState{values: make(map[string]json.RawMessage)}
}

func (m *memUIState) Get(_ context.Context, userID, key string) (json.RawMessage, error) {
	raw, ok := m.values[userID+":"+key]
	if !ok {
		return nil, uistate.ErrNotFound
	}
	return raw, nil
}

func (m *memUIState) Set(_ context.Context, userID, key string, value json.RawMessage) error {
	m.values[userID+":"+key] = value
	return nil
}

func (m *memUIState) Delete(_ context.Context, userID, key string) error {
	delete(m.values, userID+":"+key)
	return nil
}

func newAppointmentService(api *fakeAppointmentAPI, payments *fakePaymentAPI) (AppointmentService, *querycache.Cache) {
	log := logger.New(logger.Config{Level: "error", Service: "test"})
	cache := querycache.New(5*time.Minute, 10*time.Minute)
	svc := NewAppointmentService(api, payments, booking.NewValidator(log), cache, newMemUIState(), log)
	return svc, cache
}

func TestAll_DecoratesStatuses(t *testing.T) {
	api := &fakeAppointmentAPI{appointments: []model.Appointment{
		{ID: "apt-1", Status: "TECHNICIAN_ASSIGNED"},
		{ID: "apt-2", Status: "SOMETHING_NEW"},
	}}
	svc, cache := newAppointmentService(api, &fakePaymentAPI{})
	defer cache.Stop()

	views, err := svc.All(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, status.KeyAssigned, views[0].StatusKey)
	assert.Equal(t, "Assigned", views[0].StatusLabel)

	// Unknown statuses still render, keyed as pending.
	assert.Equal(t, status.KeyPending, views[1].StatusKey)
	assert.Equal(t, "SOMETHING_NEW", views[1].StatusLabel)
}

func TestAll_SecondReadUsesCache(t *testing.T) {
	api := &fakeAppointmentAPI{appointments: []model.Appointment{{ID: "apt-1", Status: "PENDING"}}}
	svc, cache := newAppointmentService(api, &fakePaymentAPI{})
	defer cache.Stop()

	_, err := svc.All(context.Background())
	require.NoError(t, err)
	_, err = svc.All(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, api.listCalls)
}

func TestConfirm_InvalidatesCachedLists(t *testing.T) {
	api := &fakeAppointmentAPI{appointments: []model.Appointment{
		{ID: "apt-1", Status: "PENDING", Customer: model.CustomerRef{ID: "cust-1"}},
	}}
	svc, cache := newAppointmentService(api, &fakePaymentAPI{})
	defer cache.Stop()

	_, err := svc.All(context.Background())
	require.NoError(t, err)

	view, err := svc.Confirm(context.Background(), "apt-1")
	require.NoError(t, err)
	assert.Equal(t, status.KeyConfirmed, view.StatusKey)

	views, err := svc.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, status.KeyConfirmed, views[0].StatusKey, "stale pre-transition row must not survive")
	assert.Equal(t, 2, api.listCalls)
}

func TestBook_InvalidFormNeverReachesAPI(t *testing.T) {
	api := &fakeAppointmentAPI{}
	svc, cache := newAppointmentService(api, &fakePaymentAPI{})
	defer cache.Stop()

	_, err := svc.Book(context.Background(), "cust-1", &model.BookingRequest{VehicleVIN: "bad"})
	require.Error(t, err)
	assert.Empty(t, api.lastAction)

	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
	assert.Contains(t, appErr.Details, "VehicleVIN")
}

func TestBook_ValidFormCreates(t *testing.T) {
	api := &fakeAppointmentAPI{}
	svc, cache := newAppointmentService(api, &fakePaymentAPI{})
	defer cache.Stop()

	form := &model.BookingRequest{
		VehicleVIN:   "WVWZZZ1JZXW000001",
		VehiclePlate: "30A-12345",
		VehicleModel: "ID.4 Pro",
		ServiceIDs:   []string{"svc-1"},
		ScheduledAt:  time.Now().Add(24 * time.Hour),
		ContactName:  "Linh Tran",
		ContactPhone: "+84901234567",
	}

	view, err := svc.Book(context.Background(), "cust-1", form)
	require.NoError(t, err)
	assert.Equal(t, "apt-new", view.ID)
	assert.Equal(t, status.KeyPending, view.StatusKey)
}

func TestBook_RemembersLastBookingID(t *testing.T) {
	svc, cache := newAppointmentService(&fakeAppointmentAPI{}, &fakePaymentAPI{})
	defer cache.Stop()

	_, found := svc.LastBookingID(context.Background(), "cust-1")
	assert.False(t, found)

	form := &model.BookingRequest{
		VehicleVIN:   "WVWZZZ1JZXW000001",
		VehiclePlate: "30A-12345",
		VehicleModel: "ID.4 Pro",
		ServiceIDs:   []string{"svc-1"},
		ScheduledAt:  time.Now().Add(24 * time.Hour),
		ContactName:  "Linh Tran",
		ContactPhone: "+84901234567",
	}

	_, err := svc.Book(context.Background(), "cust-1", form)
	require.NoError(t, err)

	id, found := svc.LastBookingID(context.Background(), "cust-1")
	assert.True(t, found)
	assert.Equal(t, "apt-new", id)

	// Another customer's pointer is untouched.
	_, found = svc.LastBookingID(context.Background(), "cust-2")
	assert.False(t, found)
}

func TestCancel_OwnAppointment(t *testing.T) {
	api := &fakeAppointmentAPI{appointments: []model.Appointment{
		{ID: "apt-1", Status: "PENDING", Customer: model.CustomerRef{ID: "cust-1"}},
	}}
	svc, cache := newAppointmentService(api, &fakePaymentAPI{})
	defer cache.Stop()

	view, err := svc.Cancel(context.Background(), "cust-1", "apt-1")
	require.NoError(t, err)
	assert.Equal(t, status.KeyCancelled, view.StatusKey)
}

func TestCancel_OtherCustomersAppointmentRejected(t *testing.T) {
	api := &fakeAppointmentAPI{appointments: []model.Appointment{
		{ID: "apt-1", Status: "PENDING", Customer: model.CustomerRef{ID: "cust-2"}},
	}}
	svc, cache := newAppointmentService(api, &fakePaymentAPI{})
	defer cache.Stop()

	_, err := svc.Cancel(context.Background(), "cust-1", "apt-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
	assert.Empty(t, api.lastAction, "upstream cancel must never be reached")
}

func TestStart_OtherTechniciansWorkRejected(t *testing.T) {
	api := &fakeAppointmentAPI{appointments: []model.Appointment{
		{ID: "apt-1", Status: "TECHNICIAN_ASSIGNED", Technician: &model.TechnicianRef{ID: "tech-2"}},
		{ID: "apt-2", Status: "PENDING"},
	}}
	svc, cache := newAppointmentService(api, &fakePaymentAPI{})
	defer cache.Stop()

	_, err := svc.Start(context.Background(), "tech-1", "apt-1")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)

	// Unassigned work is equally off limits.
	_, err = svc.Complete(context.Background(), "tech-1", "apt-2")
	require.Error(t, err)
	assert.Empty(t, api.lastAction)

	view, err := svc.Start(context.Background(), "tech-2", "apt-1")
	require.NoError(t, err)
	assert.Equal(t, status.KeyInProgress, view.StatusKey)
}

func TestForTechnician_FiltersUpstream(t *testing.T) {
	api := &fakeAppointmentAPI{appointments: []model.Appointment{
		{ID: "apt-1", Status: "TECHNICIAN_ASSIGNED", Technician: &model.TechnicianRef{ID: "tech-1"}},
		{ID: "apt-2", Status: "PENDING"},
	}}
	svc, cache := newAppointmentService(api, &fakePaymentAPI{})
	defer cache.Stop()

	views, err := svc.ForTechnician(context.Background(), "tech-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "apt-1", views[0].ID)
}

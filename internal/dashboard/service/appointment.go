package service

import (
	"context"
	"encoding/json"
	"errors"

	"voltworks/internal/booking"
	"voltworks/internal/querycache"
	"voltworks/internal/status"
	"voltworks/internal/uistate"
	apperrors "voltworks/pkg/errors"
	"voltworks/pkg/logger"
	"voltworks/pkg/model"
)

// AppointmentAPI is the slice of the workshop API the appointment service
// consumes. Satisfied by client.AppointmentClient.
type AppointmentAPI interface {
	List(ctx context.Context) ([]model.Appointment, error)
	ListByCustomer(ctx context.Context, customerID string) ([]model.Appointment, error)
	ListByTechnician(ctx context.Context, technicianID string) ([]model.Appointment, error)
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	Create(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error)
	Confirm(ctx context.Context, id string) (*model.Appointment, error)
	Reject(ctx context.Context, id string, reason string) (*model.Appointment, error)
	Assign(ctx context.Context, id string, technicianID string) (*model.Appointment, error)
	Start(ctx context.Context, id string) (*model.Appointment, error)
	Complete(ctx context.Context, id string) (*model.Appointment, error)
	Cancel(ctx context.Context, id string) (*model.Appointment, error)
}

// PaymentAPI is satisfied by client.PaymentClient.
type PaymentAPI interface {
	Create(ctx context.Context, req *model.PaymentRequest) (*model.PaymentResult, error)
}

type AppointmentService interface {
	All(ctx context.Context) ([]AppointmentView, error)
	ForCustomer(ctx context.Context, customerID string) ([]AppointmentView, error)
	ForTechnician(ctx context.Context, technicianID string) ([]AppointmentView, error)
	Get(ctx context.Context, id string) (*AppointmentView, error)
	Book(ctx context.Context, customerID string, form *model.BookingRequest) (*AppointmentView, error)
	LastBookingID(ctx context.Context, customerID string) (string, bool)
	Pay(ctx context.Context, customerID string, req *model.PaymentRequest) (*model.PaymentResult, error)
	Confirm(ctx context.Context, id string) (*AppointmentView, error)
	Reject(ctx context.Context, id string, reason string) (*AppointmentView, error)
	Assign(ctx context.Context, id string, technicianID string) (*AppointmentView, error)

	// Start, Complete and Cancel act on behalf of a specific caller and
	// refuse appointments that do not belong to them.
	Start(ctx context.Context, technicianID, id string) (*AppointmentView, error)
	Complete(ctx context.Context, technicianID, id string) (*AppointmentView, error)
	Cancel(ctx context.Context, customerID, id string) (*AppointmentView, error)
}

type appointmentService struct {
	api       AppointmentAPI
	payments  PaymentAPI
	validator *booking.Validator
	cache     *querycache.Cache
	state     uistate.Repository
	log       *logger.Logger
}

func NewAppointmentService(
	api AppointmentAPI,
	payments PaymentAPI,
	validator *booking.Validator,
	cache *querycache.Cache,
	state uistate.Repository,
	log *logger.Logger,
) AppointmentService {
	return &appointmentService{
		api:       api,
		payments:  payments,
		validator: validator,
		cache:     cache,
		state:     state,
		log:       log,
	}
}

const (
	cacheKeyAppointmentsAll = "appointments:all"

	cacheKeyAppointmentsCustomer   = "appointments:customer:"
	cacheKeyAppointmentsTechnician = "appointments:technician:"
)

func (s *appointmentService) All(ctx context.Context) ([]AppointmentView, error) {
	return s.cachedList(ctx, cacheKeyAppointmentsAll, func(ctx context.Context) ([]model.Appointment, error) {
		return s.api.List(ctx)
	})
}

func (s *appointmentService) ForCustomer(ctx context.Context, customerID string) ([]AppointmentView, error) {
	return s.cachedList(ctx, cacheKeyAppointmentsCustomer+customerID, func(ctx context.Context) ([]model.Appointment, error) {
		return s.api.ListByCustomer(ctx, customerID)
	})
}

func (s *appointmentService) ForTechnician(ctx context.Context, technicianID string) ([]AppointmentView, error) {
	return s.cachedList(ctx, cacheKeyAppointmentsTechnician+technicianID, func(ctx context.Context) ([]model.Appointment, error) {
		return s.api.ListByTechnician(ctx, technicianID)
	})
}

func (s *appointmentService) cachedList(
	ctx context.Context,
	key string,
	fetch func(ctx context.Context) ([]model.Appointment, error),
) ([]AppointmentView, error) {
	cached, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		appointments, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return s.toViews(appointments), nil
	})
	if err != nil {
		return nil, err
	}
	views, _ := cached.([]AppointmentView)
	return views, nil
}

func (s *appointmentService) Get(ctx context.Context, id string) (*AppointmentView, error) {
	appointment, err := s.api.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := s.toView(*appointment)
	return &view, nil
}

func (s *appointmentService) Book(ctx context.Context, customerID string, form *model.BookingRequest) (*AppointmentView, error) {
	if err := s.validator.Validate(form); err != nil {
		var verrs booking.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]any, len(verrs))
			for _, ve := range verrs {
				fields[ve.Field] = ve.Message
			}
			return nil, apperrors.Validation("Booking form is invalid", fields)
		}
		return nil, err
	}

	appointment, err := s.api.Create(ctx, form)
	if err != nil {
		return nil, err
	}

	// Remembered so the dashboard can point at the new booking after a
	// reload. Persistence failure never fails the booking itself.
	if raw, marshalErr := json.Marshal(appointment.ID); marshalErr == nil {
		if err := s.state.Set(ctx, customerID, uistate.KeyLastBookingID, raw); err != nil {
			s.log.Warn("Failed to remember last booking", "customer_id", customerID, "error", err)
		}
	}

	s.invalidateFor(appointment, customerID)
	view := s.toView(*appointment)
	return &view, nil
}

func (s *appointmentService) LastBookingID(ctx context.Context, customerID string) (string, bool) {
	raw, err := s.state.Get(ctx, customerID, uistate.KeyLastBookingID)
	if err != nil {
		if !errors.Is(err, uistate.ErrNotFound) {
			s.log.Warn("Failed to read last booking", "customer_id", customerID, "error", err)
		}
		return "", false
	}

	var id string
	if err := json.Unmarshal(raw, &id); err != nil || id == "" {
		return "", false
	}
	return id, true
}

func (s *appointmentService) Pay(ctx context.Context, customerID string, req *model.PaymentRequest) (*model.PaymentResult, error) {
	result, err := s.payments.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(cacheKeyAppointmentsAll, cacheKeyAppointmentsCustomer+customerID)
	return result, nil
}

func (s *appointmentService) Confirm(ctx context.Context, id string) (*AppointmentView, error) {
	return s.transition(ctx, func(ctx context.Context) (*model.Appointment, error) {
		return s.api.Confirm(ctx, id)
	})
}

func (s *appointmentService) Reject(ctx context.Context, id string, reason string) (*AppointmentView, error) {
	return s.transition(ctx, func(ctx context.Context) (*model.Appointment, error) {
		return s.api.Reject(ctx, id, reason)
	})
}

func (s *appointmentService) Assign(ctx context.Context, id string, technicianID string) (*AppointmentView, error) {
	return s.transition(ctx, func(ctx context.Context) (*model.Appointment, error) {
		return s.api.Assign(ctx, id, technicianID)
	})
}

func (s *appointmentService) Start(ctx context.Context, technicianID, id string) (*AppointmentView, error) {
	if err := s.ensureActor(ctx, id, func(a *model.Appointment) bool {
		return a.Technician != nil && a.Technician.ID == technicianID
	}); err != nil {
		return nil, err
	}
	return s.transition(ctx, func(ctx context.Context) (*model.Appointment, error) {
		return s.api.Start(ctx, id)
	})
}

func (s *appointmentService) Complete(ctx context.Context, technicianID, id string) (*AppointmentView, error) {
	if err := s.ensureActor(ctx, id, func(a *model.Appointment) bool {
		return a.Technician != nil && a.Technician.ID == technicianID
	}); err != nil {
		return nil, err
	}
	return s.transition(ctx, func(ctx context.Context) (*model.Appointment, error) {
		return s.api.Complete(ctx, id)
	})
}

func (s *appointmentService) Cancel(ctx context.Context, customerID, id string) (*AppointmentView, error) {
	if err := s.ensureActor(ctx, id, func(a *model.Appointment) bool {
		return a.Customer.ID == customerID
	}); err != nil {
		return nil, err
	}
	return s.transition(ctx, func(ctx context.Context) (*model.Appointment, error) {
		return s.api.Cancel(ctx, id)
	})
}

// ensureActor loads the appointment and checks the caller is allowed to act
// on it. Someone else's appointment is reported as missing, not forbidden,
// so ids cannot be enumerated across accounts.
func (s *appointmentService) ensureActor(ctx context.Context, id string, owns func(*model.Appointment) bool) error {
	appointment, err := s.api.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil || !owns(appointment) {
		return apperrors.NotFoundWithID("Appointment", id)
	}
	return nil
}

func (s *appointmentService) transition(ctx context.Context, call func(ctx context.Context) (*model.Appointment, error)) (*AppointmentView, error) {
	appointment, err := call(ctx)
	if err != nil {
		return nil, err
	}
	s.invalidateFor(appointment, appointment.Customer.ID)
	view := s.toView(*appointment)
	return &view, nil
}

// invalidateFor drops every cached list the changed appointment could appear
// in, so the next read refetches instead of showing the pre-transition row.
func (s *appointmentService) invalidateFor(appointment *model.Appointment, customerID string) {
	keys := []string{cacheKeyAppointmentsAll}
	if customerID != "" {
		keys = append(keys, cacheKeyAppointmentsCustomer+customerID)
	}
	if appointment.Technician != nil {
		keys = append(keys, cacheKeyAppointmentsTechnician+appointment.Technician.ID)
	}
	s.cache.Invalidate(keys...)
}

func (s *appointmentService) toViews(appointments []model.Appointment) []AppointmentView {
	views := make([]AppointmentView, 0, len(appointments))
	for _, a := range appointments {
		views = append(views, s.toView(a))
	}
	return views
}

func (s *appointmentService) toView(a model.Appointment) AppointmentView {
	if !status.Known(a.Status) {
		s.log.Warn("Unknown appointment status from workshop API",
			"appointment_id", a.ID,
			"status", a.Status,
		)
	}
	return newAppointmentView(a)
}

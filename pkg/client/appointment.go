package client

import (
	"context"
	"net/url"
	"time"

	"voltworks/pkg/model"
)

type AppointmentClient struct {
	httpClient *HttpClient
}

func NewAppointmentClient(baseURL string, timeout time.Duration) *AppointmentClient {
	return &AppointmentClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

func (c *AppointmentClient) List(ctx context.Context) ([]model.Appointment, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/appointments")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var appointments []model.Appointment
	if err := decodeData(resp, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *AppointmentClient) ListByCustomer(ctx context.Context, customerID string) ([]model.Appointment, error) {
	path := "/api/v1/appointments?customer_id=" + url.QueryEscape(customerID)
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var appointments []model.Appointment
	if err := decodeData(resp, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *AppointmentClient) ListByTechnician(ctx context.Context, technicianID string) ([]model.Appointment, error) {
	path := "/api/v1/appointments?technician_id=" + url.QueryEscape(technicianID)
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var appointments []model.Appointment
	if err := decodeData(resp, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (c *AppointmentClient) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/appointments/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var appointment model.Appointment
	if err := decodeData(resp, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *AppointmentClient) Create(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error) {
	resp, err := c.httpClient.POST(ctx, "/api/v1/appointments", req)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var appointment model.Appointment
	if err := decodeData(resp, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Lifecycle actions. The workshop API owns the transition rules; the
// dashboard just relays the user's intent and renders whatever comes back.

func (c *AppointmentClient) Confirm(ctx context.Context, id string) (*model.Appointment, error) {
	return c.action(ctx, id, "confirm", nil)
}

func (c *AppointmentClient) Reject(ctx context.Context, id string, reason string) (*model.Appointment, error) {
	return c.action(ctx, id, "reject", map[string]string{"reason": reason})
}

func (c *AppointmentClient) Assign(ctx context.Context, id string, technicianID string) (*model.Appointment, error) {
	return c.action(ctx, id, "assign", map[string]string{"technician_id": technicianID})
}

func (c *AppointmentClient) Start(ctx context.Context, id string) (*model.Appointment, error) {
	return c.action(ctx, id, "start", nil)
}

func (c *AppointmentClient) Complete(ctx context.Context, id string) (*model.Appointment, error) {
	return c.action(ctx, id, "complete", nil)
}

func (c *AppointmentClient) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	return c.action(ctx, id, "cancel", nil)
}

func (c *AppointmentClient) action(ctx context.Context, id, verb string, body any) (*model.Appointment, error) {
	path := "/api/v1/appointments/" + url.PathEscape(id) + "/" + verb
	resp, err := c.httpClient.POST(ctx, path, body)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var appointment model.Appointment
	if err := decodeData(resp, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

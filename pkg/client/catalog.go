package client

import (
	"context"
	"net/url"
	"time"

	"voltworks/pkg/model"
)

// CatalogClient reads the staff-facing reference collections: customers,
// vehicles, parts and maintenance tasks.
type CatalogClient struct {
	httpClient *HttpClient
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	return &CatalogClient{
		httpClient: NewHttpClient(baseURL, timeout),
	}
}

func (c *CatalogClient) Customers(ctx context.Context) ([]model.Customer, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/customers")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var customers []model.Customer
	if err := decodeData(resp, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *CatalogClient) Vehicles(ctx context.Context) ([]model.Vehicle, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/vehicles")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var vehicles []model.Vehicle
	if err := decodeData(resp, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *CatalogClient) VehicleByVIN(ctx context.Context, vin string) (*model.Vehicle, error) {
	path := "/api/v1/vehicles/vin/" + url.PathEscape(vin)
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var vehicle model.Vehicle
	if err := decodeData(resp, &vehicle); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (c *CatalogClient) Parts(ctx context.Context) ([]model.Part, error) {
	resp, err := c.httpClient.GET(ctx, "/api/v1/parts")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var parts []model.Part
	if err := decodeData(resp, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

func (c *CatalogClient) MaintenanceTasks(ctx context.Context, technicianID string) ([]model.MaintenanceTask, error) {
	path := "/api/v1/maintenance-tasks"
	if technicianID != "" {
		path += "?technician_id=" + url.QueryEscape(technicianID)
	}
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var tasks []model.MaintenanceTask
	if err := decodeData(resp, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// EnumValues fetches a backend-owned enumeration by name, e.g.
// "appointment-status".
func (c *CatalogClient) EnumValues(ctx context.Context, name string) ([]model.EnumValue, error) {
	path := "/api/v1/enums/" + url.PathEscape(name)
	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, upstreamError(resp)
	}

	var values []model.EnumValue
	if err := decodeData(resp, &values); err != nil {
		return nil, err
	}
	return values, nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"

	"voltworks/internal/querycache"
	"voltworks/internal/uistate"
	"voltworks/pkg/logger"
	"voltworks/pkg/model"
)

// CatalogAPI is satisfied by client.CatalogClient.
type CatalogAPI interface {
	Customers(ctx context.Context) ([]model.Customer, error)
	Vehicles(ctx context.Context) ([]model.Vehicle, error)
	VehicleByVIN(ctx context.Context, vin string) (*model.Vehicle, error)
	Parts(ctx context.Context) ([]model.Part, error)
	MaintenanceTasks(ctx context.Context, technicianID string) ([]model.MaintenanceTask, error)
	EnumValues(ctx context.Context, name string) ([]model.EnumValue, error)
}

type CatalogService interface {
	Customers(ctx context.Context) ([]model.Customer, error)
	Vehicles(ctx context.Context) ([]model.Vehicle, error)
	Parts(ctx context.Context) ([]model.Part, error)
	MaintenanceTasks(ctx context.Context, technicianID string) ([]model.MaintenanceTask, error)
	EnumValues(ctx context.Context, name string) ([]model.EnumValue, error)

	// LookupVIN resolves a vehicle and remembers the VIN as the user's last
	// lookup so the form can prefill next time.
	LookupVIN(ctx context.Context, userID, vin string) (*model.Vehicle, error)
	LastVIN(ctx context.Context, userID string) (string, bool)
}

type catalogService struct {
	api   CatalogAPI
	cache *querycache.Cache
	state uistate.Repository
	log   *logger.Logger
}

func NewCatalogService(api CatalogAPI, cache *querycache.Cache, state uistate.Repository, log *logger.Logger) CatalogService {
	return &catalogService{
		api:   api,
		cache: cache,
		state: state,
		log:   log,
	}
}

func (s *catalogService) Customers(ctx context.Context) ([]model.Customer, error) {
	cached, err := s.cache.GetOrLoad(ctx, "catalog:customers", func(ctx context.Context) (any, error) {
		return s.api.Customers(ctx)
	})
	if err != nil {
		return nil, err
	}
	customers, _ := cached.([]model.Customer)
	return customers, nil
}

func (s *catalogService) Vehicles(ctx context.Context) ([]model.Vehicle, error) {
	cached, err := s.cache.GetOrLoad(ctx, "catalog:vehicles", func(ctx context.Context) (any, error) {
		return s.api.Vehicles(ctx)
	})
	if err != nil {
		return nil, err
	}
	vehicles, _ := cached.([]model.Vehicle)
	return vehicles, nil
}

func (s *catalogService) Parts(ctx context.Context) ([]model.Part, error) {
	cached, err := s.cache.GetOrLoad(ctx, "catalog:parts", func(ctx context.Context) (any, error) {
		return s.api.Parts(ctx)
	})
	if err != nil {
		return nil, err
	}
	parts, _ := cached.([]model.Part)
	return parts, nil
}

func (s *catalogService) MaintenanceTasks(ctx context.Context, technicianID string) ([]model.MaintenanceTask, error) {
	cached, err := s.cache.GetOrLoad(ctx, "catalog:tasks:"+technicianID, func(ctx context.Context) (any, error) {
		return s.api.MaintenanceTasks(ctx, technicianID)
	})
	if err != nil {
		return nil, err
	}
	tasks, _ := cached.([]model.MaintenanceTask)
	return tasks, nil
}

func (s *catalogService) EnumValues(ctx context.Context, name string) ([]model.EnumValue, error) {
	cached, err := s.cache.GetOrLoad(ctx, "catalog:enum:"+name, func(ctx context.Context) (any, error) {
		return s.api.EnumValues(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	values, _ := cached.([]model.EnumValue)
	return values, nil
}

func (s *catalogService) LookupVIN(ctx context.Context, userID, vin string) (*model.Vehicle, error) {
	vehicle, err := s.api.VehicleByVIN(ctx, vin)
	if err != nil {
		return nil, err
	}

	raw, marshalErr := json.Marshal(vin)
	if marshalErr == nil {
		if err := s.state.Set(ctx, userID, uistate.KeyLastVINLookup, raw); err != nil {
			s.log.Warn("Failed to remember VIN lookup", "user_id", userID, "error", err)
		}
	}

	return vehicle, nil
}

func (s *catalogService) LastVIN(ctx context.Context, userID string) (string, bool) {
	raw, err := s.state.Get(ctx, userID, uistate.KeyLastVINLookup)
	if err != nil {
		if !errors.Is(err, uistate.ErrNotFound) {
			s.log.Warn("Failed to read last VIN lookup", "user_id", userID, "error", err)
		}
		return "", false
	}

	var vin string
	if err := json.Unmarshal(raw, &vin); err != nil || vin == "" {
		return "", false
	}
	return vin, true
}

// Package orderrepo persists repair-order aggregates with GORM. The
// aggregate's nested parts (services, authorization, event log) are stored
// as JSON columns on a single row, so a save is one write and a load is one
// read.
package orderrepo

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"repairshop/internal/core/domain/model/kernel"
	"repairshop/internal/core/domain/model/order"
)

// OrderDTO is the database row for a repair order. Position is assigned on
// first insert and never updated, so FindAll can return orders in the order
// they first arrived.
type OrderDTO struct {
	ID            string `gorm:"primaryKey"`
	Customer      string
	Vehicle       string
	Status        string `gorm:"index"`
	CancelReason  string
	Services      datatypes.JSON
	Authorization datatypes.JSON
	Events        datatypes.JSON
	Position      int64 `gorm:"autoIncrement;uniqueIndex"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

type componentDTO struct {
	Description   string  `json:"description"`
	EstimatedCost string  `json:"estimated_cost"`
	RealCost      *string `json:"real_cost,omitempty"`
}

type serviceDTO struct {
	Description        string         `json:"description"`
	LaborEstimatedCost string         `json:"labor_estimated_cost"`
	RealLaborCost      *string        `json:"real_labor_cost,omitempty"`
	Completed          bool           `json:"completed"`
	Components         []componentDTO `json:"components"`
}

type authorizationDTO struct {
	Version          int       `json:"version"`
	AuthorizedAmount string    `json:"authorized_amount"`
	Subtotal         string    `json:"subtotal"`
	Timestamp        time.Time `json:"timestamp"`
}

type eventDTO struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// fromDomain converts a repair-order aggregate to its database row.
func fromDomain(aggregate *order.RepairOrder) (OrderDTO, error) {
	services := make([]serviceDTO, 0, len(aggregate.Services()))
	for _, service := range aggregate.Services() {
		services = append(services, serviceFromDomain(service))
	}
	servicesJSON, err := json.Marshal(services)
	if err != nil {
		return OrderDTO{}, err
	}

	var authorizationJSON datatypes.JSON
	if authorization := aggregate.Authorization(); authorization != nil {
		raw, marshalErr := json.Marshal(authorizationDTO{
			Version:          authorization.Version(),
			AuthorizedAmount: authorization.AuthorizedAmount().String(),
			Subtotal:         authorization.Subtotal().String(),
			Timestamp:        authorization.Timestamp(),
		})
		if marshalErr != nil {
			return OrderDTO{}, marshalErr
		}
		authorizationJSON = raw
	}

	events := make([]eventDTO, 0, len(aggregate.Events()))
	for _, event := range aggregate.Events() {
		events = append(events, eventDTO{
			ID:        event.ID().String(),
			Type:      event.Type(),
			Timestamp: event.Timestamp(),
			Metadata:  event.Metadata(),
		})
	}
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:            aggregate.ID(),
		Customer:      aggregate.Customer(),
		Vehicle:       aggregate.Vehicle(),
		Status:        aggregate.Status().String(),
		CancelReason:  aggregate.CancelReason(),
		Services:      servicesJSON,
		Authorization: authorizationJSON,
		Events:        eventsJSON,
	}, nil
}

func serviceFromDomain(service *order.Service) serviceDTO {
	components := make([]componentDTO, 0, len(service.Components()))
	for _, component := range service.Components() {
		dto := componentDTO{
			Description:   component.Description(),
			EstimatedCost: component.EstimatedCost().String(),
		}
		if component.HasRealCost() {
			realCost := component.RealCost().String()
			dto.RealCost = &realCost
		}
		components = append(components, dto)
	}

	dto := serviceDTO{
		Description:        service.Description(),
		LaborEstimatedCost: service.LaborEstimatedCost().String(),
		Completed:          service.IsCompleted(),
		Components:         components,
	}
	if service.HasRealLaborCost() {
		realLabor := service.RealLaborCost().String()
		dto.RealLaborCost = &realLabor
	}
	return dto
}

// toDomain converts a database row back to a repair-order aggregate.
func toDomain(dto OrderDTO) (*order.RepairOrder, error) {
	var serviceDTOs []serviceDTO
	if len(dto.Services) > 0 {
		if err := json.Unmarshal(dto.Services, &serviceDTOs); err != nil {
			return nil, err
		}
	}

	services := make([]*order.Service, 0, len(serviceDTOs))
	for _, serviceData := range serviceDTOs {
		service, err := serviceToDomain(serviceData)
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	var authorization *order.Authorization
	if len(dto.Authorization) > 0 {
		var authorizationData authorizationDTO
		if err := json.Unmarshal(dto.Authorization, &authorizationData); err != nil {
			return nil, err
		}

		authorizedAmount, err := kernel.NewMoneyFromString(authorizationData.AuthorizedAmount)
		if err != nil {
			return nil, err
		}
		subtotal, err := kernel.NewMoneyFromString(authorizationData.Subtotal)
		if err != nil {
			return nil, err
		}

		authorization = order.RestoreAuthorization(
			authorizationData.Version, authorizedAmount, subtotal, authorizationData.Timestamp)
	}

	var eventDTOs []eventDTO
	if len(dto.Events) > 0 {
		if err := json.Unmarshal(dto.Events, &eventDTOs); err != nil {
			return nil, err
		}
	}

	events := make([]order.DomainEvent, 0, len(eventDTOs))
	for _, eventData := range eventDTOs {
		eventID, err := uuid.Parse(eventData.ID)
		if err != nil {
			return nil, err
		}
		events = append(events, order.RestoreDomainEvent(
			eventID, dto.ID, eventData.Type, eventData.Timestamp, eventData.Metadata))
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreRepairOrder(
		dto.ID, dto.Customer, dto.Vehicle, status, services, authorization, events, dto.CancelReason)
}

func serviceToDomain(dto serviceDTO) (*order.Service, error) {
	labor, err := kernel.NewMoneyFromString(dto.LaborEstimatedCost)
	if err != nil {
		return nil, err
	}

	components := make([]*order.Component, 0, len(dto.Components))
	for _, componentData := range dto.Components {
		estimated, componentErr := kernel.NewMoneyFromString(componentData.EstimatedCost)
		if componentErr != nil {
			return nil, componentErr
		}

		var realCost *kernel.Money
		if componentData.RealCost != nil {
			cost, realErr := kernel.NewMoneyFromString(*componentData.RealCost)
			if realErr != nil {
				return nil, realErr
			}
			realCost = &cost
		}

		components = append(components,
			order.RestoreComponent(componentData.Description, estimated, realCost))
	}

	var realLabor *kernel.Money
	if dto.RealLaborCost != nil {
		cost, realErr := kernel.NewMoneyFromString(*dto.RealLaborCost)
		if realErr != nil {
			return nil, realErr
		}
		realLabor = &cost
	}

	return order.RestoreService(dto.Description, labor, components, realLabor, dto.Completed), nil
}

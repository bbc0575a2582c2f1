package eventtype

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/internal/platform/validate"
	"github.com/taibuivan/eventos/pkg/pagination"
	"github.com/taibuivan/eventos/pkg/pointer"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListEventTypes(context context.Context, params pagination.Params) (pagination.Page[*EventType], error) {
	page, err := service.repo.List(context, params)
	if err != nil {
		return page, fmt.Errorf("eventtype_service_list_failed: %w", err)
	}
	return page, nil
}

func (service *Service) GetEventType(context context.Context, id int64) (*EventType, error) {
	eventType, err := service.repo.Get(context, id)
	if err != nil {
		return nil, fmt.Errorf("eventtype_service_get_failed: %w", err)
	}
	return eventType, nil
}

func (service *Service) CreateEventType(context context.Context, input Input) (*EventType, error) {
	eventType, err := fromInput(input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, eventType); err != nil {
		return nil, fmt.Errorf("eventtype_service_create_failed: %w", err)
	}

	service.logger.Info("event_type_created", slog.Int64("event_type_id", eventType.ID), slog.String("name", eventType.Name))
	return eventType, nil
}

func (service *Service) UpdateEventType(context context.Context, id int64, input Input) (*EventType, error) {
	if input.ID != nil && *input.ID != id {
		return nil, apperr.ValidationError("Body id does not match the path id")
	}

	eventType, err := fromInput(input)
	if err != nil {
		return nil, err
	}
	eventType.ID = id

	if err := service.repo.Update(context, eventType); err != nil {
		return nil, fmt.Errorf("eventtype_service_update_failed: %w", err)
	}

	service.logger.Info("event_type_updated", slog.Int64("event_type_id", id))
	return eventType, nil
}

func (service *Service) DeleteEventType(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return fmt.Errorf("eventtype_service_delete_failed: %w", err)
	}

	service.logger.Warn("event_type_deleted", slog.Int64("event_type_id", id))
	return nil
}

func fromInput(input Input) (*EventType, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, MaxNameLen)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &EventType{
		Name:     input.Name,
		IsActive: pointer.Fallback(input.IsActive, true),
	}, nil
}

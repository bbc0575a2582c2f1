package event

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/internal/platform/sec"
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

func (service *Service) ListEvents(context context.Context, params pagination.Params) (pagination.Page[*Event], error) {
	page, err := service.repo.List(context, Filter{}, params)
	if err != nil {
		return page, fmt.Errorf("event_service_list_failed: %w", err)
	}
	return page, nil
}

/*
ListMine returns the events owned by the authenticated caller, latest start first.

The owner filter comes from the token subject only. Absent claims or a
subject that is not a positive integer fail before the store is queried.
*/
func (service *Service) ListMine(context context.Context, claims *sec.AuthClaims, params pagination.Params) (pagination.Page[*Event], error) {
	userID, err := claims.UserID()
	if err != nil {
		return pagination.Page[*Event]{}, apperr.Unauthorized("Authentication required")
	}

	page, err := service.repo.List(context, Filter{OwnerID: &userID}, params)
	if err != nil {
		return page, fmt.Errorf("event_service_list_mine_failed: %w", err)
	}
	return page, nil
}

func (service *Service) GetEvent(context context.Context, id int64) (*Event, error) {
	event, err := service.repo.Get(context, id)
	if err != nil {
		return nil, fmt.Errorf("event_service_get_failed: %w", err)
	}
	return event, nil
}

/*
CreateEvent validates and stores a new event.

When the owner is omitted it defaults to the caller. The event type and the
owner must exist.
*/
func (service *Service) CreateEvent(context context.Context, claims *sec.AuthClaims, input Input) (*Event, error) {
	if input.OwnerID == nil {
		if callerID, err := claims.UserID(); err == nil {
			input.OwnerID = &callerID
		}
	}

	event, err := fromInput(input)
	if err != nil {
		return nil, err
	}

	if err := service.checkReferences(context, event); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, event); err != nil {
		return nil, fmt.Errorf("event_service_create_failed: %w", err)
	}

	service.logger.Info("event_created",
		slog.Int64("event_id", event.ID),
		slog.Int64("event_type_id", event.EventTypeID),
	)

	return service.GetEvent(context, event.ID)
}

/*
UpdateEvent replaces an event.

An omitted owner keeps the current owner. Reference and date checks are the
same as on create.
*/
func (service *Service) UpdateEvent(context context.Context, id int64, input Input) (*Event, error) {
	if input.ID != nil && *input.ID != id {
		return nil, apperr.ValidationError("Body id does not match the path id")
	}

	current, err := service.repo.Get(context, id)
	if err != nil {
		return nil, fmt.Errorf("event_service_update_lookup_failed: %w", err)
	}
	if input.OwnerID == nil {
		input.OwnerID = current.OwnerID
	}

	event, err := fromInput(input)
	if err != nil {
		return nil, err
	}
	event.ID = id

	if err := service.checkReferences(context, event); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, event); err != nil {
		return nil, fmt.Errorf("event_service_update_failed: %w", err)
	}

	service.logger.Info("event_updated", slog.Int64("event_id", id))

	return service.GetEvent(context, id)
}

func (service *Service) DeleteEvent(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return fmt.Errorf("event_service_delete_failed: %w", err)
	}

	service.logger.Warn("event_deleted", slog.Int64("event_id", id))
	return nil
}

func (service *Service) checkReferences(context context.Context, event *Event) error {
	found, err := service.repo.EventTypeExists(context, event.EventTypeID)
	if err != nil {
		return fmt.Errorf("event_service_type_lookup_failed: %w", err)
	}
	if !found {
		return validate.FieldError(FieldEventTypeID, "Event type does not exist")
	}

	if event.OwnerID == nil {
		return nil
	}

	found, err = service.repo.OwnerExists(context, *event.OwnerID)
	if err != nil {
		return fmt.Errorf("event_service_owner_lookup_failed: %w", err)
	}
	if !found {
		return validate.FieldError(FieldOwnerID, "User does not exist")
	}
	return nil
}

func fromInput(input Input) (*Event, error) {
	cost := input.Cost
	if !cost.Valid {
		cost = pgtype.Numeric{Int: big.NewInt(0), Valid: true}
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLen).
		MaxLen(FieldAddress, input.Address, MaxAddressLen).
		RequiredID(FieldEventTypeID, input.EventTypeID).
		Custom(FieldStartDate, !input.StartDate.IsValid(), "Must be a valid date (YYYY-MM-DD)").
		Custom(FieldEndDate, !input.EndDate.IsValid(), "Must be a valid date (YYYY-MM-DD)").
		Custom(FieldStartTime, !input.StartTime.IsValid(), "Must be a valid time (HH:MM:SS)").
		Custom(FieldEndTime, !input.EndTime.IsValid(), "Must be a valid time (HH:MM:SS)")

	if input.StartDate.IsValid() && input.EndDate.IsValid() {
		validator.Custom(FieldEndDate, input.EndDate.Before(input.StartDate), "Must not be before the start date")

		if input.EndDate == input.StartDate {
			validator.Custom(FieldEndTime, input.EndTime.Before(input.StartTime), "Must not be before the start time")
		}
	}

	if input.OwnerID != nil {
		validator.RequiredID(FieldOwnerID, *input.OwnerID)
	}

	if message := checkCost(cost); message != "" {
		validator.Custom(FieldCost, true, message)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &Event{
		Name:        input.Name,
		Description: input.Description,
		Address:     input.Address,
		Cost:        cost,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		EventTypeID: input.EventTypeID,
		OwnerID:     input.OwnerID,
		IsActive:    pointer.Fallback(input.IsActive, true),
	}, nil
}

// checkCost returns a validation message for amounts NUMERIC(18,2) cannot hold.
func checkCost(cost pgtype.Numeric) string {
	if cost.NaN || cost.InfinityModifier != pgtype.Finite {
		return "Must be a finite amount"
	}

	amount, err := cost.Float64Value()
	if err != nil {
		return "Must be a valid amount"
	}
	if amount.Float64 < 0 {
		return "Must not be negative"
	}
	if amount.Float64 >= MaxCost {
		return "Is too large"
	}
	return ""
}

package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/internal/platform/validate"
	"github.com/taibuivan/eventos/pkg/pagination"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// ListAttendances lists records, optionally only those of one event.
func (service *Service) ListAttendances(context context.Context, filter Filter, params pagination.Params) (pagination.Page[*Attendance], error) {
	page, err := service.repo.List(context, filter, params)
	if err != nil {
		return page, fmt.Errorf("attendance_service_list_failed: %w", err)
	}
	return page, nil
}

func (service *Service) GetAttendance(context context.Context, id int64) (*Attendance, error) {
	record, err := service.repo.Get(context, id)
	if err != nil {
		return nil, fmt.Errorf("attendance_service_get_failed: %w", err)
	}
	return record, nil
}

func (service *Service) CreateAttendance(context context.Context, input Input) (*Attendance, error) {
	record, err := service.fromInput(context, input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, record); err != nil {
		return nil, fmt.Errorf("attendance_service_create_failed: %w", err)
	}

	service.logger.Info("attendance_recorded",
		slog.Int64("attendance_id", record.ID),
		slog.Int64("event_id", record.EventID),
		slog.Int64("person_id", record.PersonID),
	)

	return service.GetAttendance(context, record.ID)
}

func (service *Service) UpdateAttendance(context context.Context, id int64, input Input) (*Attendance, error) {
	if input.ID != nil && *input.ID != id {
		return nil, apperr.ValidationError("Body id does not match the path id")
	}

	record, err := service.fromInput(context, input)
	if err != nil {
		return nil, err
	}
	record.ID = id

	if err := service.repo.Update(context, record); err != nil {
		return nil, fmt.Errorf("attendance_service_update_failed: %w", err)
	}

	service.logger.Info("attendance_updated", slog.Int64("attendance_id", id))

	return service.GetAttendance(context, id)
}

func (service *Service) DeleteAttendance(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return fmt.Errorf("attendance_service_delete_failed: %w", err)
	}

	service.logger.Warn("attendance_deleted", slog.Int64("attendance_id", id))
	return nil
}

func (service *Service) fromInput(context context.Context, input Input) (*Attendance, error) {
	validator := &validate.Validator{}
	validator.RequiredID(FieldEventID, input.EventID).
		RequiredID(FieldPersonID, input.PersonID).
		MaxLen(FieldNote, input.Note, MaxNoteLen)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	found, err := service.repo.EventExists(context, input.EventID)
	if err != nil {
		return nil, fmt.Errorf("attendance_service_event_lookup_failed: %w", err)
	}
	if !found {
		return nil, validate.FieldError(FieldEventID, "Event does not exist")
	}

	found, err = service.repo.PersonExists(context, input.PersonID)
	if err != nil {
		return nil, fmt.Errorf("attendance_service_person_lookup_failed: %w", err)
	}
	if !found {
		return nil, validate.FieldError(FieldPersonID, "Person does not exist")
	}

	checkedInAt := service.now().UTC()
	if input.CheckedInAt != nil {
		checkedInAt = input.CheckedInAt.UTC()
	}

	return &Attendance{
		CheckedInAt: checkedInAt,
		Note:        input.Note,
		EventID:     input.EventID,
		PersonID:    input.PersonID,
	}, nil
}

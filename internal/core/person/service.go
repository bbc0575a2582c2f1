package person

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/civil"

	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/internal/platform/validate"
	"github.com/taibuivan/eventos/pkg/gender"
	"github.com/taibuivan/eventos/pkg/pagination"
	"github.com/taibuivan/eventos/pkg/pointer"
)

type Service struct {
	repo        Repository
	phoneRegion string
	logger      *slog.Logger
	now         func() time.Time
}

// NewService builds the person service. Phone numbers without a country
// prefix are read in phoneRegion.
func NewService(repo Repository, phoneRegion string, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		phoneRegion: phoneRegion,
		logger:      logger,
		now:         time.Now,
	}
}

func (service *Service) ListPersons(context context.Context, params pagination.Params) (pagination.Page[*Person], error) {
	page, err := service.repo.List(context, params)
	if err != nil {
		return page, fmt.Errorf("person_service_list_failed: %w", err)
	}
	return page, nil
}

func (service *Service) GetPerson(context context.Context, id int64) (*Person, error) {
	person, err := service.repo.Get(context, id)
	if err != nil {
		return nil, fmt.Errorf("person_service_get_failed: %w", err)
	}
	return person, nil
}

func (service *Service) CreatePerson(context context.Context, input Input) (*Person, error) {
	person, err := service.fromInput(input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, person); err != nil {
		return nil, fmt.Errorf("person_service_create_failed: %w", err)
	}

	service.logger.Info("person_created", slog.Int64("person_id", person.ID))
	return person, nil
}

func (service *Service) UpdatePerson(context context.Context, id int64, input Input) (*Person, error) {
	if input.ID != nil && *input.ID != id {
		return nil, apperr.ValidationError("Body id does not match the path id")
	}

	person, err := service.fromInput(input)
	if err != nil {
		return nil, err
	}
	person.ID = id

	if err := service.repo.Update(context, person); err != nil {
		return nil, fmt.Errorf("person_service_update_failed: %w", err)
	}

	service.logger.Info("person_updated", slog.Int64("person_id", id))
	return person, nil
}

func (service *Service) DeletePerson(context context.Context, id int64) error {
	if err := service.repo.Delete(context, id); err != nil {
		return fmt.Errorf("person_service_delete_failed: %w", err)
	}

	service.logger.Warn("person_deleted", slog.Int64("person_id", id))
	return nil
}

func (service *Service) fromInput(input Input) (*Person, error) {
	code := pointer.Fallback(input.Gender, gender.Other)

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLen).
		MaxLen(FieldPhone, input.Phone, MaxPhoneLen).
		Phone(FieldPhone, input.Phone, service.phoneRegion).
		Custom(FieldGender, !code.Valid(), "Must be 0, 1 or 2")

	if input.BirthDate != nil {
		today := civil.DateOf(service.now())
		validator.Custom(FieldBirthDate, !input.BirthDate.IsValid(), "Must be a valid date (YYYY-MM-DD)").
			Custom(FieldBirthDate, input.BirthDate.After(today), "Must not be in the future")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &Person{
		Name:      input.Name,
		Phone:     input.Phone,
		BirthDate: input.BirthDate,
		Gender:    code,
		IsActive:  pointer.Fallback(input.IsActive, true),
	}, nil
}

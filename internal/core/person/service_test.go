package person_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/eventos/internal/core/person"
	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/pkg/gender"
	"github.com/taibuivan/eventos/pkg/pagination"
	"github.com/taibuivan/eventos/pkg/pointer"
)

type memoryRepository struct {
	mu       sync.Mutex
	nextID   int64
	persons  map[int64]*person.Person
	attended map[int64]bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{persons: map[int64]*person.Person{}, attended: map[int64]bool{}}
}

func (repository *memoryRepository) List(_ context.Context, params pagination.Params) (pagination.Page[*person.Person], error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var items []*person.Person
	for _, stored := range repository.persons {
		items = append(items, stored)
	}
	return pagination.NewPage(items, len(items), params), nil
}

func (repository *memoryRepository) Get(_ context.Context, id int64) (*person.Person, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.persons[id]
	if !ok {
		return nil, apperr.NotFound("Person")
	}
	return stored, nil
}

func (repository *memoryRepository) Create(_ context.Context, created *person.Person) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.nextID++
	created.ID = repository.nextID
	repository.persons[created.ID] = created
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, updated *person.Person) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.persons[updated.ID]; !ok {
		return apperr.NotFound("Person")
	}
	repository.persons[updated.ID] = updated
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.persons[id]; !ok {
		return apperr.NotFound("Person")
	}
	if repository.attended[id] {
		return apperr.ValidationError("Person still has attendance records")
	}
	delete(repository.persons, id)
	return nil
}

func newService(repository person.Repository) *person.Service {
	return person.NewService(repository, "EC", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.HTTPStatus
}

func TestCreatePerson(t *testing.T) {
	service := newService(newMemoryRepository())
	ctx := context.Background()

	created, err := service.CreatePerson(ctx, person.Input{
		Name:      "María",
		Phone:     "0991234567",
		BirthDate: &civil.Date{Year: 1990, Month: 5, Day: 17},
		Gender:    pointer.To(gender.Female),
	})
	require.NoError(t, err)
	assert.Equal(t, gender.Female, created.Gender)
	assert.True(t, created.IsActive)

	defaulted, err := service.CreatePerson(ctx, person.Input{Name: "Sam", Phone: "+593 99 123 4567"})
	require.NoError(t, err)
	assert.Equal(t, gender.Other, defaulted.Gender)
}

func TestCreatePerson_Validation(t *testing.T) {
	service := newService(newMemoryRepository())

	tests := []struct {
		name  string
		input person.Input
	}{
		{"missing name", person.Input{Name: " "}},
		{"bad phone", person.Input{Name: "Sam", Phone: "12345"}},
		{"unknown gender", person.Input{Name: "Sam", Gender: pointer.To(gender.Gender(5))}},
		{"invalid date", person.Input{Name: "Sam", BirthDate: &civil.Date{Year: 2001, Month: 2, Day: 30}}},
		{"future date", person.Input{Name: "Sam", BirthDate: &civil.Date{Year: 3000, Month: 1, Day: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreatePerson(context.Background(), tt.input)
			assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		})
	}
}

func TestUpdatePerson(t *testing.T) {
	service := newService(newMemoryRepository())
	ctx := context.Background()

	created, err := service.CreatePerson(ctx, person.Input{Name: "Sam"})
	require.NoError(t, err)

	updated, err := service.UpdatePerson(ctx, created.ID, person.Input{ID: pointer.To(created.ID), Name: "Samuel", IsActive: pointer.To(false)})
	require.NoError(t, err)
	assert.Equal(t, "Samuel", updated.Name)
	assert.False(t, updated.IsActive)

	_, err = service.UpdatePerson(ctx, created.ID, person.Input{ID: pointer.To[int64](2), Name: "Samuel"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = service.UpdatePerson(ctx, 99, person.Input{Name: "Ghost"})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestDeletePerson_BlockedByAttendance(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)
	ctx := context.Background()

	created, err := service.CreatePerson(ctx, person.Input{Name: "Sam"})
	require.NoError(t, err)
	repository.attended[created.ID] = true

	err = service.DeletePerson(ctx, created.ID)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	delete(repository.attended, created.ID)
	assert.NoError(t, service.DeletePerson(ctx, created.ID))
}

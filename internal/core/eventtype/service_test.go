package eventtype_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/eventos/internal/core/eventtype"
	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/internal/platform/ctxutil"
	"github.com/taibuivan/eventos/internal/platform/sec"
	"github.com/taibuivan/eventos/pkg/pagination"
	"github.com/taibuivan/eventos/pkg/pointer"
)

type memoryRepository struct {
	mu         sync.Mutex
	nextID     int64
	items      map[int64]*eventtype.EventType
	referenced map[int64]bool
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{items: map[int64]*eventtype.EventType{}, referenced: map[int64]bool{}}
}

func (repository *memoryRepository) List(_ context.Context, params pagination.Params) (pagination.Page[*eventtype.EventType], error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var items []*eventtype.EventType
	for id := int64(1); id <= repository.nextID; id++ {
		if item, ok := repository.items[id]; ok {
			items = append(items, item)
		}
	}
	return pagination.NewPage(items, len(items), params), nil
}

func (repository *memoryRepository) Get(_ context.Context, id int64) (*eventtype.EventType, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	item, ok := repository.items[id]
	if !ok {
		return nil, apperr.NotFound("Event type")
	}
	return item, nil
}

func (repository *memoryRepository) Create(_ context.Context, eventType *eventtype.EventType) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.nextID++
	eventType.ID = repository.nextID
	repository.items[eventType.ID] = eventType
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, eventType *eventtype.EventType) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.items[eventType.ID]; !ok {
		return apperr.NotFound("Event type")
	}
	repository.items[eventType.ID] = eventType
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.items[id]; !ok {
		return apperr.NotFound("Event type")
	}
	if repository.referenced[id] {
		return apperr.ValidationError("Event type is still used by events")
	}
	delete(repository.items, id)
	return nil
}

func newService(repository eventtype.Repository) *eventtype.Service {
	return eventtype.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.HTTPStatus
}

func TestCreateEventType(t *testing.T) {
	service := newService(newMemoryRepository())
	ctx := context.Background()

	created, err := service.CreateEventType(ctx, eventtype.Input{Name: "Conference"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.True(t, created.IsActive)

	inactive, err := service.CreateEventType(ctx, eventtype.Input{Name: "Draft", IsActive: pointer.To(false)})
	require.NoError(t, err)
	assert.False(t, inactive.IsActive)

	_, err = service.CreateEventType(ctx, eventtype.Input{Name: ""})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = service.CreateEventType(ctx, eventtype.Input{Name: strings.Repeat("x", 101)})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestUpdateEventType(t *testing.T) {
	service := newService(newMemoryRepository())
	ctx := context.Background()

	created, err := service.CreateEventType(ctx, eventtype.Input{Name: "Conference"})
	require.NoError(t, err)

	updated, err := service.UpdateEventType(ctx, created.ID, eventtype.Input{ID: pointer.To(created.ID), Name: "Summit"})
	require.NoError(t, err)
	assert.Equal(t, "Summit", updated.Name)

	_, err = service.UpdateEventType(ctx, created.ID, eventtype.Input{ID: pointer.To[int64](99), Name: "Summit"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = service.UpdateEventType(ctx, 99, eventtype.Input{Name: "Summit"})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestDeleteEventType_BlockedWhileReferenced(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)
	ctx := context.Background()

	used, err := service.CreateEventType(ctx, eventtype.Input{Name: "Conference"})
	require.NoError(t, err)
	unused, err := service.CreateEventType(ctx, eventtype.Input{Name: "Workshop"})
	require.NoError(t, err)
	repository.referenced[used.ID] = true

	err = service.DeleteEventType(ctx, used.ID)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	assert.NoError(t, service.DeleteEventType(ctx, unused.ID))
}

func TestHandler_WritesRequireAuthentication(t *testing.T) {
	router := chi.NewRouter()
	eventtype.NewHandler(newService(newMemoryRepository())).RegisterRoutes(router)

	// 1. Anonymous write
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Conference"}`))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 2. Authenticated write
	claims := &sec.AuthClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "7"}, Role: sec.RoleUser}
	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Conference"}`))
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	// 3. Anonymous read
	request = httptest.NewRequest(http.MethodGet, "/", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total":1`)
}

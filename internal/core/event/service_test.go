package event_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/eventos/internal/core/event"
	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/internal/platform/ctxutil"
	"github.com/taibuivan/eventos/internal/platform/sec"
	"github.com/taibuivan/eventos/pkg/pagination"
	"github.com/taibuivan/eventos/pkg/pointer"
)

type memoryRepository struct {
	mu         sync.Mutex
	nextID     int64
	events     map[int64]*event.Event
	types      map[int64]string
	owners     map[int64]string
	attendance map[int64]int
	listCalls  int
	lastFilter event.Filter
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		events:     map[int64]*event.Event{},
		types:      map[int64]string{1: "Conference", 2: "Workshop"},
		owners:     map[int64]string{7: "alice", 42: "bob"},
		attendance: map[int64]int{},
	}
}

func (repository *memoryRepository) List(_ context.Context, filter event.Filter, params pagination.Params) (pagination.Page[*event.Event], error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.listCalls++
	repository.lastFilter = filter

	var items []*event.Event
	for _, stored := range repository.events {
		if filter.OwnerID != nil && (stored.OwnerID == nil || *stored.OwnerID != *filter.OwnerID) {
			continue
		}
		items = append(items, stored)
	}
	sort.Slice(items, func(i, j int) bool { return items[j].StartDate.Before(items[i].StartDate) })

	return pagination.NewPage(items, len(items), params), nil
}

func (repository *memoryRepository) Get(_ context.Context, id int64) (*event.Event, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.events[id]
	if !ok {
		return nil, apperr.NotFound("Event")
	}
	copied := *stored
	copied.EventTypeName = repository.types[copied.EventTypeID]
	if copied.OwnerID != nil {
		copied.OwnerUsername = pointer.To(repository.owners[*copied.OwnerID])
	}
	return &copied, nil
}

func (repository *memoryRepository) Create(_ context.Context, created *event.Event) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.nextID++
	created.ID = repository.nextID
	copied := *created
	repository.events[created.ID] = &copied
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, updated *event.Event) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.events[updated.ID]; !ok {
		return apperr.NotFound("Event")
	}
	copied := *updated
	repository.events[updated.ID] = &copied
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.events[id]; !ok {
		return apperr.NotFound("Event")
	}
	delete(repository.events, id)
	delete(repository.attendance, id)
	return nil
}

func (repository *memoryRepository) EventTypeExists(_ context.Context, id int64) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	_, ok := repository.types[id]
	return ok, nil
}

func (repository *memoryRepository) OwnerExists(_ context.Context, id int64) (bool, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	_, ok := repository.owners[id]
	return ok, nil
}

func newService(repository event.Repository) *event.Service {
	return event.NewService(repository, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func claimsFor(subject string) *sec.AuthClaims {
	return &sec.AuthClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: subject}, Role: sec.RoleUser}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	appError := apperr.As(err)
	require.NotNil(t, appError, "expected an AppError, got %v", err)
	return appError.HTTPStatus
}

func validInput() event.Input {
	return event.Input{
		Name:        "GopherCon",
		Address:     "Av. Amazonas",
		Cost:        pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true},
		StartDate:   civil.Date{Year: 2026, Month: 11, Day: 3},
		EndDate:     civil.Date{Year: 2026, Month: 11, Day: 4},
		StartTime:   civil.Time{Hour: 9},
		EndTime:     civil.Time{Hour: 18},
		EventTypeID: 1,
	}
}

func TestCreateEvent_DefaultsOwnerToCaller(t *testing.T) {
	service := newService(newMemoryRepository())

	created, err := service.CreateEvent(context.Background(), claimsFor("42"), validInput())
	require.NoError(t, err)

	require.NotNil(t, created.OwnerID)
	assert.Equal(t, int64(42), *created.OwnerID)
	assert.Equal(t, "bob", *created.OwnerUsername)
	assert.Equal(t, "Conference", created.EventTypeName)
	assert.True(t, created.IsActive)
}

func TestCreateEvent_ZeroCostWhenOmitted(t *testing.T) {
	service := newService(newMemoryRepository())

	input := validInput()
	input.Cost = pgtype.Numeric{}

	created, err := service.CreateEvent(context.Background(), claimsFor("7"), input)
	require.NoError(t, err)

	raw, err := json.Marshal(created.Cost)
	require.NoError(t, err)
	assert.Equal(t, "0", string(raw))
}

func TestCreateEvent_Validation(t *testing.T) {
	service := newService(newMemoryRepository())

	tests := []struct {
		name   string
		mutate func(*event.Input)
	}{
		{"missing name", func(input *event.Input) { input.Name = "" }},
		{"unknown type", func(input *event.Input) { input.EventTypeID = 9 }},
		{"missing type", func(input *event.Input) { input.EventTypeID = 0 }},
		{"unknown owner", func(input *event.Input) { input.OwnerID = pointer.To[int64](99) }},
		{"missing start date", func(input *event.Input) { input.StartDate = civil.Date{} }},
		{"end before start", func(input *event.Input) { input.EndDate = civil.Date{Year: 2026, Month: 11, Day: 2} }},
		{"same day, end time first", func(input *event.Input) {
			input.EndDate = input.StartDate
			input.EndTime = civil.Time{Hour: 8}
		}},
		{"negative cost", func(input *event.Input) { input.Cost = pgtype.Numeric{Int: big.NewInt(-1), Valid: true} }},
		{"cost overflow", func(input *event.Input) { input.Cost = pgtype.Numeric{Int: big.NewInt(1), Exp: 17, Valid: true} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := service.CreateEvent(context.Background(), claimsFor("7"), input)
			assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
		})
	}
}

func TestListMine_ScopesToSubject(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)
	ctx := context.Background()

	for _, owner := range []string{"42", "7", "42"} {
		_, err := service.CreateEvent(ctx, claimsFor(owner), validInput())
		require.NoError(t, err)
	}

	page, err := service.ListMine(ctx, claimsFor("42"), pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	for _, item := range page.Items {
		assert.Equal(t, int64(42), *item.OwnerID)
	}
}

func TestListMine_RequiresIdentity(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)
	ctx := context.Background()

	for _, claims := range []*sec.AuthClaims{nil, claimsFor(""), claimsFor("abc"), claimsFor("-1")} {
		_, err := service.ListMine(ctx, claims, pagination.Params{Page: 1, Limit: 20})
		assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
	}
	assert.Zero(t, repository.listCalls)
}

func TestUpdateEvent(t *testing.T) {
	service := newService(newMemoryRepository())
	ctx := context.Background()

	created, err := service.CreateEvent(ctx, claimsFor("42"), validInput())
	require.NoError(t, err)

	// 1. Owner kept when omitted
	input := validInput()
	input.ID = pointer.To(created.ID)
	input.Name = "GopherCon EC"
	input.EventTypeID = 2

	updated, err := service.UpdateEvent(ctx, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "GopherCon EC", updated.Name)
	assert.Equal(t, "Workshop", updated.EventTypeName)
	assert.Equal(t, int64(42), *updated.OwnerID)

	// 2. Id mismatch
	input.ID = pointer.To(created.ID + 1)
	_, err = service.UpdateEvent(ctx, created.ID, input)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	// 3. Missing event
	_, err = service.UpdateEvent(ctx, 99, validInput())
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestDeleteEvent_RemovesAttendance(t *testing.T) {
	repository := newMemoryRepository()
	service := newService(repository)
	ctx := context.Background()

	created, err := service.CreateEvent(ctx, claimsFor("42"), validInput())
	require.NoError(t, err)
	repository.attendance[created.ID] = 3

	require.NoError(t, service.DeleteEvent(ctx, created.ID))
	assert.NotContains(t, repository.attendance, created.ID)

	_, err = service.GetEvent(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	err = service.DeleteEvent(ctx, created.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestHandler_MineAndWireFormat(t *testing.T) {
	repository := newMemoryRepository()
	router := chi.NewRouter()
	event.NewHandler(newService(repository)).RegisterRoutes(router)

	body := `{"name":"GopherCon","cost":12.5,"start_date":"2026-11-03","end_date":"2026-11-04",` +
		`"start_time":"09:00:00","end_time":"18:30:00","event_type_id":1}`

	// 1. Create as subject 42
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claimsFor("42")))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, "2026-11-03", created.Data["start_date"])
	assert.Equal(t, "18:30:00", created.Data["end_time"])
	assert.Equal(t, 12.5, created.Data["cost"])
	assert.Equal(t, "bob", created.Data["username"])

	// 2. Mine without identity
	request = httptest.NewRequest(http.MethodGet, "/mine", nil)
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// 3. Mine as another subject
	request = httptest.NewRequest(http.MethodGet, "/mine", nil)
	request = request.WithContext(ctxutil.WithAuthUser(request.Context(), claimsFor("7")))
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"data":[]`)
}

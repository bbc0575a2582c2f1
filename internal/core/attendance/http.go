package attendance

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/eventos/internal/platform/middleware"
	requestutil "github.com/taibuivan/eventos/internal/platform/request"
	"github.com/taibuivan/eventos/internal/platform/respond"
	"github.com/taibuivan/eventos/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listAttendances)
	router.Get("/{id}", handler.getAttendance)

	// Authenticated
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.createAttendance)
		authRoute.Put("/{id}", handler.updateAttendance)
		authRoute.Delete("/{id}", handler.deleteAttendance)
	})
}

/*
GET /api/v1/attendances?event_id=

Description: Lists attendance records, newest check-in first.

Request:
  - event_id: optional positive integer

Response:
  - 200: []Attendance with pagination meta
  - 400: ErrValidation: event_id is not a positive integer
*/
func (handler *Handler) listAttendances(writer http.ResponseWriter, request *http.Request) {
	eventID, err := requestutil.OptionalQueryID(request, "event_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.ListAttendances(request.Context(), Filter{EventID: eventID}, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, page.Meta())
}

func (handler *Handler) getAttendance(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.GetAttendance(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) createAttendance(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.CreateAttendance(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, record)
}

func (handler *Handler) updateAttendance(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.UpdateAttendance(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, record)
}

func (handler *Handler) deleteAttendance(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteAttendance(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

package event

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
	router.Get("/", handler.listEvents)
	router.Get("/{id}", handler.getEvent)

	// Authenticated
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Get("/mine", handler.listMine)
		authRoute.Post("/", handler.createEvent)
		authRoute.Put("/{id}", handler.updateEvent)
		authRoute.Delete("/{id}", handler.deleteEvent)
	})
}

func (handler *Handler) listEvents(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.ListEvents(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, page.Meta())
}

/*
GET /api/v1/events/mine

Description: Events owned by the caller, latest start date first.

Response:
  - 200: []Event with pagination meta
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.ListMine(request.Context(), requestutil.Claims(request), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, page.Meta())
}

func (handler *Handler) getEvent(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.GetEvent(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, event)
}

func (handler *Handler) createEvent(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.service.CreateEvent(request.Context(), requestutil.Claims(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, event)
}

func (handler *Handler) updateEvent(writer http.ResponseWriter, request *http.Request) {
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

	event, err := handler.service.UpdateEvent(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, event)
}

func (handler *Handler) deleteEvent(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEvent(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

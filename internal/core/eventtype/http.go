package eventtype

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
	router.Get("/", handler.listEventTypes)
	router.Get("/{id}", handler.getEventType)

	// Authenticated
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.createEventType)
		authRoute.Put("/{id}", handler.updateEventType)
		authRoute.Delete("/{id}", handler.deleteEventType)
	})
}

func (handler *Handler) listEventTypes(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.ListEventTypes(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, page.Meta())
}

func (handler *Handler) getEventType(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	eventType, err := handler.service.GetEventType(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, eventType)
}

func (handler *Handler) createEventType(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	eventType, err := handler.service.CreateEventType(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, eventType)
}

func (handler *Handler) updateEventType(writer http.ResponseWriter, request *http.Request) {
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

	eventType, err := handler.service.UpdateEventType(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, eventType)
}

func (handler *Handler) deleteEventType(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteEventType(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

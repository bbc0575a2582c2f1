package person

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
	router.Get("/", handler.listPersons)
	router.Get("/{id}", handler.getPerson)

	// Authenticated
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Post("/", handler.createPerson)
		authRoute.Put("/{id}", handler.updatePerson)
		authRoute.Delete("/{id}", handler.deletePerson)
	})
}

func (handler *Handler) listPersons(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.ListPersons(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, page.Meta())
}

func (handler *Handler) getPerson(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	person, err := handler.service.GetPerson(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, person)
}

func (handler *Handler) createPerson(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	person, err := handler.service.CreatePerson(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, person)
}

func (handler *Handler) updatePerson(writer http.ResponseWriter, request *http.Request) {
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

	person, err := handler.service.UpdatePerson(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, person)
}

func (handler *Handler) deletePerson(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePerson(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

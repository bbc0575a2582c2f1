// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/eventos/internal/platform/middleware"
	requestutil "github.com/taibuivan/eventos/internal/platform/request"
	"github.com/taibuivan/eventos/internal/platform/respond"
	"github.com/taibuivan/eventos/internal/platform/sec"
	"github.com/taibuivan/eventos/pkg/gender"
	"github.com/taibuivan/eventos/pkg/pagination"
)

// Handler implements the HTTP layer for user account administration.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account endpoints.
//
// Every route requires authentication. Listing, editing and deleting also
// require the admin role.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/me", handler.getMe)
	router.Get("/{id}", handler.getUser)

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Get("/", handler.listUsers)
		adminRoute.Put("/{id}", handler.updateUser)
		adminRoute.Delete("/{id}", handler.deleteUser)
	})

	return router
}

/*
GET /api/v1/users

Description: Lists accounts page by page.

Response:
  - 200: []User with pagination meta
  - 403: ErrForbidden: Caller is not an admin
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.accountService.ListUsers(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, page.Items, page.Meta())
}

/*
GET /api/v1/users/me

Description: Retrieves the profile of the authenticated caller.

Response:
  - 200: User
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	user, err := handler.accountService.GetMe(request.Context(), requestutil.Claims(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
GET /api/v1/users/{id}

Response:
  - 200: User
  - 404: ErrNotFound: User not found
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateUserRequest is the full replacement payload for an account.
type updateUserRequest struct {
	ID          *int64         `json:"id"`
	Username    string         `json:"username"`
	DisplayName string         `json:"name"`
	Phone       string         `json:"phone"`
	BirthDate   *civil.Date    `json:"birth_date"`
	Gender      *gender.Gender `json:"gender"`
	Email       *string        `json:"email"`
	Role        sec.UserRole   `json:"role"`
	IsActive    bool           `json:"is_active"`
}

/*
PUT /api/v1/users/{id}

Description: Replaces profile fields, role and status. Credentials are not editable here.

Request:
  - body: updateUserRequest

Response:
  - 200: User: The updated profile
  - 400: ErrValidation: Invalid fields or body id differs from path id
  - 404: ErrNotFound: User not found
  - 409: ErrConflict: Username already taken
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateUser(request.Context(), userID, UpdateInput{
		ID:          input.ID,
		Username:    input.Username,
		DisplayName: input.DisplayName,
		Phone:       input.Phone,
		BirthDate:   input.BirthDate,
		Gender:      input.Gender,
		Email:       input.Email,
		Role:        input.Role,
		IsActive:    input.IsActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{id}

Response:
  - 204: No Content
  - 400: ErrValidation: User still owns events
  - 404: ErrNotFound: User not found
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteUser(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

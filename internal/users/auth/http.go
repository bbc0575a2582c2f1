// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/eventos/internal/platform/request"
	"github.com/taibuivan/eventos/internal/platform/respond"
	"github.com/taibuivan/eventos/pkg/gender"
)

// # Definitions & Constructors

// Handler implements the public authentication endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and returns a token.
//   - POST /login    : Verifies credentials and returns a token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

// # Request Payloads

type registerRequest struct {
	Username    string         `json:"username"`
	Password    string         `json:"password"`
	DisplayName string         `json:"name"`
	Phone       string         `json:"phone"`
	BirthDate   *civil.Date    `json:"birth_date"`
	Gender      *gender.Gender `json:"gender"`
	Email       *string        `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
POST /api/v1/auth/register

Description: Creates an account with the default role and signs the caller in.

Request:
  - Body: registerRequest

Response:
  - 201: AuthResult: id, username, role, token
  - 400: ErrInvalidJSON/Validation: Missing username or password, bad profile fields
  - 409: ErrConflict: Username already taken (case-insensitive)
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:    input.Username,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Phone:       input.Phone,
		BirthDate:   input.BirthDate,
		Gender:      input.Gender,
		Email:       input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
POST /api/v1/auth/login

Description: Verifies credentials and issues a 4-hour access token.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: AuthResult: id, username, role, token
  - 401: ErrUnauthorized: Generic message for every failure cause
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// Copyright (c) 2026 Eventos. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/eventos/internal/platform/apperr"
	"github.com/taibuivan/eventos/internal/platform/ctxutil"
	"github.com/taibuivan/eventos/internal/platform/sec"
	"github.com/taibuivan/eventos/internal/platform/validate"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID parses a positive integer URL parameter such as "{id}".

Returns:
  - int64: the parsed identifier
  - error: apperr.ValidationError when the segment is not a positive integer
*/
func ID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, apperr.ValidationError("Invalid " + name)
	}

	return id, nil
}

/*
OptionalQueryID parses an optional positive integer query parameter.

Returns nil when the parameter is absent.
*/
func OptionalQueryID(request *http.Request, name string) (*int64, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return nil, apperr.ValidationError("Invalid " + name)
	}

	return &id, nil
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredUserID returns the numeric id of the currently logged-in user.

A missing identity and a subject that is not a positive integer are reported
with the same error.

Returns:
  - int64: User id
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredUserID(request *http.Request) (int64, error) {
	return UserIDFromClaims(Claims(request))
}

// UserIDFromClaims converts an optional identity into a user id or an Unauthorized error.
func UserIDFromClaims(claims *sec.AuthClaims) (int64, error) {
	id, err := claims.UserID()
	if err != nil {
		return 0, apperr.Unauthorized("Authentication required")
	}
	return id, nil
}

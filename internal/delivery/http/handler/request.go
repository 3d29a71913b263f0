package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"carelink-backend/internal/delivery/http/middleware"
	"carelink-backend/pkg/response"
	"carelink-backend/pkg/validator"
)

// decodeAndValidate reads a JSON body into req and runs its validate tags.
// It writes the error response itself and reports whether to continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return false
	}

	if v != nil {
		if err := v.Validate(req); err != nil {
			response.ValidationError(w, v.FormatValidationErrors(err))
			return false
		}
	}
	return true
}

// callerIs reports whether the authenticated caller is the account behind email.
func callerIs(r *http.Request, email string) bool {
	caller, ok := middleware.GetUserEmailFromContext(r.Context())
	return ok && strings.EqualFold(caller, strings.TrimSpace(email))
}

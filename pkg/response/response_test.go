package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"carelink-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decoded struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   struct {
		Kind   string            `json:"kind"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) decoded {
	t.Helper()
	var body decoded
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestFromError_Kinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		kind   string
	}{
		{apperror.New(apperror.KindMissingFields, "All fields are required."), http.StatusBadRequest, "missing_fields"},
		{apperror.New(apperror.KindForbidden, "Report upload limit reached"), http.StatusForbidden, "forbidden"},
		{apperror.New(apperror.KindNotFound, "Plan not found"), http.StatusNotFound, "not_found"},
		{apperror.New(apperror.KindConflict, "Email already exists"), http.StatusConflict, "conflict"},
		{apperror.New(apperror.KindUnauthorized, "Invalid email or password"), http.StatusUnauthorized, "unauthorized"},
		{apperror.External("OCR unavailable", errors.New("timeout")), http.StatusBadGateway, "external_service_error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		FromError(w, tc.err)

		assert.Equal(t, tc.status, w.Code)
		body := decode(t, w)
		assert.False(t, body.Success)
		assert.Equal(t, tc.kind, body.Error.Kind)
	}
}

func TestFromError_StorageDoesNotLeakCause(t *testing.T) {
	w := httptest.NewRecorder()
	FromError(w, apperror.Storage(errors.New(`pq: relation "userplan" does not exist`)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Internal server error", body.Message)
	assert.Equal(t, "storage_error", body.Error.Kind)
	assert.NotContains(t, w.Body.String(), "userplan")
}

func TestFromError_Unclassified(t *testing.T) {
	w := httptest.NewRecorder()
	FromError(w, errors.New("dial tcp 10.0.0.1:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
}

func TestValidationError(t *testing.T) {
	w := httptest.NewRecorder()
	ValidationError(w, map[string]string{"Email": "Email is required"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "missing_fields", body.Error.Kind)
	assert.Equal(t, "Email is required", body.Error.Fields["Email"])
}

func TestFromError_MissingFieldsCarriesFields(t *testing.T) {
	w := httptest.NewRecorder()
	FromError(w, apperror.MissingFields("report_type"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "missing_fields", body.Error.Kind)
	assert.Equal(t, "report_type is required", body.Error.Fields["report_type"])
}

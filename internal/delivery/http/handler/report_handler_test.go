package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/delivery/http/middleware"
	"carelink-backend/internal/usecase"
	"carelink-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportUsecase struct {
	usecase.ReportUsecase
	submit   func(req *dto.SubmitReportRequest) (*dto.SubmitReportResponse, error)
	finalize func(req *dto.FeedbackRequest) (*dto.FeedbackResponse, error)
	result   func(reportID string) (*dto.PrescriptionResultResponse, error)
}

func (f *fakeReportUsecase) SubmitReport(ctx context.Context, req *dto.SubmitReportRequest) (*dto.SubmitReportResponse, error) {
	return f.submit(req)
}

func (f *fakeReportUsecase) FinalizeFeedback(ctx context.Context, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	return f.finalize(req)
}

func (f *fakeReportUsecase) GetPrescriptionResult(ctx context.Context, reportID string) (*dto.PrescriptionResultResponse, error) {
	return f.result(reportID)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Kind   string            `json:"kind"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asCaller(req *http.Request, email string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.UserEmailKey, email))
}

func TestSubmitReport_OK(t *testing.T) {
	id := uuid.New()
	h := NewReportHandler(&fakeReportUsecase{
		submit: func(req *dto.SubmitReportRequest) (*dto.SubmitReportResponse, error) {
			assert.Equal(t, "Blood Test", req.ReportType)
			return &dto.SubmitReportResponse{ID: id, RemainingReports: 2}, nil
		},
	}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.SubmitReport(rec, jsonRequest(t, http.MethodPost, "/api/users/submit-report", map[string]string{
		"user_email":   "kamal@example.com",
		"doctor_email": "dr@example.com",
		"report_type":  "Blood Test",
		"file_data":    "JVBERi0xLjQK",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)
	assert.Contains(t, string(body.Data), `"remaining_reports":2`)
}

func TestSubmitReport_ErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"no active plan", usecase.ErrNoActivePlan, http.StatusForbidden, "forbidden"},
		{"limit reached", usecase.ErrReportLimitReached, http.StatusForbidden, "forbidden"},
		{"unknown doctor", usecase.ErrDoctorNotFound, http.StatusNotFound, "not_found"},
		{"bad file", usecase.ErrInvalidFileData, http.StatusBadRequest, "invalid_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewReportHandler(&fakeReportUsecase{
				submit: func(*dto.SubmitReportRequest) (*dto.SubmitReportResponse, error) { return nil, tt.err },
			}, validator.NewValidator())

			rec := httptest.NewRecorder()
			h.SubmitReport(rec, jsonRequest(t, http.MethodPost, "/api/users/submit-report", map[string]string{}))

			assert.Equal(t, tt.status, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.kind, body.Error.Kind)
		})
	}
}

func TestSubmitReport_MalformedBody(t *testing.T) {
	h := NewReportHandler(&fakeReportUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.SubmitReport(rec, httptest.NewRequest(http.MethodPost, "/api/users/submit-report", bytes.NewBufferString("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitFeedback(t *testing.T) {
	reportID := uuid.New()
	calls := 0
	h := NewReportHandler(&fakeReportUsecase{
		finalize: func(req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
			calls++
			if calls > 1 {
				return nil, usecase.ErrReportAlreadyReviewed
			}
			return &dto.FeedbackResponse{ID: uuid.New(), ReportID: reportID}, nil
		},
	}, validator.NewValidator())

	payload := map[string]string{
		"report_id":            reportID.String(),
		"doctor_email":         "dr@example.com",
		"user_email":           "kamal@example.com",
		"prescription_details": "Rest",
	}

	rec := httptest.NewRecorder()
	h.SubmitFeedback(rec, asCaller(jsonRequest(t, http.MethodPost, "/api/users/report/feedback", payload), "dr@example.com"))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.SubmitFeedback(rec, asCaller(jsonRequest(t, http.MethodPost, "/api/users/report/feedback", payload), "dr@example.com"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeEnvelope(t, rec).Error.Kind)

	rec = httptest.NewRecorder()
	h.SubmitFeedback(rec, asCaller(jsonRequest(t, http.MethodPost, "/api/users/report/feedback", payload), "other@example.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 2, calls)
}

func TestGetPrescription_PathParam(t *testing.T) {
	h := NewReportHandler(&fakeReportUsecase{
		result: func(reportID string) (*dto.PrescriptionResultResponse, error) {
			assert.Equal(t, "abc", reportID)
			return &dto.PrescriptionResultResponse{Message: "Pending Result"}, nil
		},
	}, validator.NewValidator())

	router := mux.NewRouter()
	router.HandleFunc("/api/users/prescriptions/{report_id}", h.GetPrescription)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/prescriptions/abc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(decodeEnvelope(t, rec).Data), "Pending Result")
}

package handler

import (
	"net/http"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/usecase"
	"carelink-backend/pkg/response"
	"carelink-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
	validator     *validator.CustomValidator
}

func NewReportHandler(reportUsecase usecase.ReportUsecase, validator *validator.CustomValidator) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
		validator:     validator,
	}
}

func (h *ReportHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitReportRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	report, err := h.reportUsecase.SubmitReport(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Report submitted successfully", report)
}

func (h *ReportHandler) GetLatestReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportUsecase.GetLatestReports(r.Context(), r.URL.Query().Get("user_email"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Reports retrieved successfully", reports)
}

// SubmitFeedback is doctor only; the doctor in the body must be the caller.
func (h *ReportHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req dto.FeedbackRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}
	if req.DoctorEmail != "" && !callerIs(r, req.DoctorEmail) {
		response.Forbidden(w, "Feedback must be submitted by the reviewing doctor")
		return
	}

	feedback, err := h.reportUsecase.FinalizeFeedback(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Feedback submitted successfully", feedback)
}

func (h *ReportHandler) GetPrescription(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportUsecase.GetPrescriptionResult(r.Context(), mux.Vars(r)["report_id"])
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Prescription retrieved successfully", result)
}

package handler

import (
	"net/http"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/usecase"
	"carelink-backend/pkg/response"
	"carelink-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	reportUsecase usecase.ReportUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, reportUsecase usecase.ReportUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		reportUsecase: reportUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.DoctorSignupRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.Signup(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Doctor registered successfully", doctor)
}

func (h *DoctorHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadImageRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.doctorUsecase.UploadImage(r.Context(), &req); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Image uploaded successfully", nil)
}

func (h *DoctorHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	image, err := h.doctorUsecase.GetImage(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Attachment(w, "image/jpeg", "doctor.jpg", image)
}

func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.GetAllDoctors(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetDoctorDetails(w http.ResponseWriter, r *http.Request) {
	doctor, err := h.doctorUsecase.GetDoctorDetails(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	doctorEmail := r.URL.Query().Get("doctor_email")
	if doctorEmail != "" && !callerIs(r, doctorEmail) {
		response.Forbidden(w, "Reports of another doctor are not accessible")
		return
	}

	reports, err := h.reportUsecase.GetDoctorReports(r.Context(), doctorEmail)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Reports retrieved successfully", reports)
}

func (h *DoctorHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUsecase.GetReportFile(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, err)
		return
	}
	if !callerIs(r, report.DoctorEmail) {
		response.Forbidden(w, "Report was sent to another doctor")
		return
	}

	response.Success(w, http.StatusOK, "Report retrieved successfully", report)
}

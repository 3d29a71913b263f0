package handler

import (
	"net/http"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/delivery/http/middleware"
	"carelink-backend/internal/usecase"
	"carelink-backend/pkg/response"
	"carelink-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

func (h *PrescriptionHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadPrescriptionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	prescription, err := h.prescriptionUsecase.Upload(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Prescription uploaded successfully", prescription)
}

func (h *PrescriptionHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.prescriptionUsecase.GetPending(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Pending prescriptions retrieved successfully", prescriptions)
}

func (h *PrescriptionHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid prescription ID")
		return
	}

	var req dto.CreatePresOrderRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	actor, _ := middleware.GetUserEmailFromContext(r.Context())
	order, err := h.prescriptionUsecase.CreateOrder(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Prescription order created successfully", order)
}

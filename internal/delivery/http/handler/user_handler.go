package handler

import (
	"net/http"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/usecase"
	"carelink-backend/pkg/response"
	"carelink-backend/pkg/validator"
)

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
	}
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	user, err := h.userUsecase.CreateUser(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", user)
}

func (h *UserHandler) GetAllUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userUsecase.GetAllUsers(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func (h *UserHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	var req dto.UploadImageRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	if err := h.userUsecase.UploadImage(r.Context(), &req); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Image uploaded successfully", nil)
}

func (h *UserHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	image, err := h.userUsecase.GetImage(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Attachment(w, "image/jpeg", "profile.jpg", image)
}

func (h *UserHandler) UpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdatePersonalInfoRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	info, err := h.userUsecase.UpdatePersonalInfo(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Personal info updated successfully", info)
}

func (h *UserHandler) GetPatientDetails(w http.ResponseWriter, r *http.Request) {
	details, err := h.userUsecase.GetPatientDetails(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patient details retrieved successfully", details)
}

// GetPatientsForDoctor lists the patients who sent reports to the caller.
func (h *UserHandler) GetPatientsForDoctor(w http.ResponseWriter, r *http.Request) {
	doctorEmail := r.URL.Query().Get("doctorEmail")
	if doctorEmail != "" && !callerIs(r, doctorEmail) {
		response.Forbidden(w, "Patients of another doctor are not accessible")
		return
	}

	patients, err := h.userUsecase.GetPatientsForDoctor(r.Context(), doctorEmail)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

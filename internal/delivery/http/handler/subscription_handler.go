package handler

import (
	"net/http"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/usecase"
	"carelink-backend/pkg/response"
	"carelink-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type SubscriptionHandler struct {
	subscriptionUsecase usecase.SubscriptionUsecase
	validator           *validator.CustomValidator
}

func NewSubscriptionHandler(subscriptionUsecase usecase.SubscriptionUsecase, validator *validator.CustomValidator) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUsecase: subscriptionUsecase,
		validator:           validator,
	}
}

func (h *SubscriptionHandler) GetPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.subscriptionUsecase.GetAllPlans(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Plans retrieved successfully", plans)
}

func (h *SubscriptionHandler) GetPlanDetails(w http.ResponseWriter, r *http.Request) {
	plan, err := h.subscriptionUsecase.GetPlanDetails(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Plan retrieved successfully", plan)
}

// Purchase buys a plan or renews the current subscription in place. Both
// answer 200; the body's renewed flag tells them apart.
func (h *SubscriptionHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req dto.PurchaseSubscriptionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	sub, err := h.subscriptionUsecase.Purchase(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	message := "Payment successful"
	if sub.Renewed {
		message = "Subscription updated successfully"
	}
	response.Success(w, http.StatusOK, message, sub)
}

func (h *SubscriptionHandler) CheckPlan(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckPlanRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	eligibility, err := h.subscriptionUsecase.CheckEligibility(r.Context(), req.Email)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Active plan found", eligibility)
}

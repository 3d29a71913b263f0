package converter

import (
	"encoding/json"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
)

func PlanToResponse(plan *entity.Plan) *dto.PlanResponse {
	if plan == nil {
		return nil
	}

	features := json.RawMessage(plan.Features)
	if len(features) == 0 {
		features = json.RawMessage("[]")
	}

	return &dto.PlanResponse{
		Name:              plan.Name,
		Price:             plan.Price,
		Frequency:         plan.Frequency,
		ReportUploadLimit: plan.ReportUploadLimit,
		Features:          features,
	}
}

func PlansToResponses(plans []entity.Plan) []dto.PlanResponse {
	responses := make([]dto.PlanResponse, len(plans))
	for i := range plans {
		responses[i] = *PlanToResponse(&plans[i])
	}
	return responses
}

// PlanToDetailResponse adds the payable total rendered to two decimals.
func PlanToDetailResponse(plan *entity.Plan) *dto.PlanDetailResponse {
	if plan == nil {
		return nil
	}

	return &dto.PlanDetailResponse{
		PlanResponse: *PlanToResponse(plan),
		Total:        plan.Price.StringFixed(2),
	}
}

func SubscriptionToResponse(sub *entity.Subscription, renewed bool) *dto.SubscriptionResponse {
	if sub == nil {
		return nil
	}

	return &dto.SubscriptionResponse{
		ID:              sub.ID,
		UserEmail:       sub.UserEmail,
		PlanName:        sub.PlanName,
		PricePaid:       sub.PricePaid,
		PurchaseDate:    sub.PurchaseDate.Format(dateLayout),
		StartDate:       sub.StartDate.Format(dateLayout),
		EndDate:         sub.EndDate.Format(dateLayout),
		Status:          string(sub.Status),
		ReportsUploaded: sub.ReportsUploaded,
		Renewed:         renewed,
	}
}

func SubscriptionToEligibility(sub *entity.Subscription) *dto.PlanEligibilityResponse {
	if sub == nil {
		return nil
	}

	return &dto.PlanEligibilityResponse{
		PlanName:         sub.PlanName,
		EndDate:          sub.EndDate.Format(dateLayout),
		RemainingReports: sub.RemainingReports(),
	}
}

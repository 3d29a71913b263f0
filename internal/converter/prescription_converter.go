package converter

import (
	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/pkg/blob"
)

func PrescriptionToResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	if p == nil {
		return nil
	}

	return &dto.PrescriptionResponse{
		ID:        p.ID,
		UserEmail: p.UserEmail,
		Image:     blob.Encode(p.Image),
		Note:      p.Note,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescriptions[i])
	}
	return responses
}

func PresOrderToResponse(order *entity.PresOrder) *dto.PresOrderResponse {
	if order == nil {
		return nil
	}

	return &dto.PresOrderResponse{
		ID:             order.ID,
		PrescriptionID: order.PrescriptionID,
		UserEmail:      order.UserEmail,
		Items:          decodeOrderItems(order.Items),
		Total:          order.Total,
		Status:         string(order.Status),
		CreatedAt:      order.CreatedAt,
	}
}

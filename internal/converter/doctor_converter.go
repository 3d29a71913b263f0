package converter

import (
	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/pkg/blob"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:            doctor.ID,
		Name:          doctor.Name,
		Email:         doctor.Email,
		Specialty:     doctor.Specialty,
		LicenseNumber: doctor.LicenseNumber,
		Description:   doctor.Description,
		Rating:        doctor.Rating,
		Image:         blob.Encode(doctor.Image),
	}
}

func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

// DoctorToDetailResponse includes reviews when they are loaded
func DoctorToDetailResponse(doctor *entity.Doctor) *dto.DoctorDetailResponse {
	if doctor == nil {
		return nil
	}

	reviews := make([]dto.ReviewResponse, len(doctor.Reviews))
	for i, r := range doctor.Reviews {
		reviews[i] = dto.ReviewResponse{
			Username: r.Username,
			Comment:  r.Comment,
			Date:     r.Date.Format(dateLayout),
		}
	}

	return &dto.DoctorDetailResponse{
		DoctorResponse: *DoctorToResponse(doctor),
		Reviews:        reviews,
	}
}

package converter

import (
	"time"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/pkg/blob"
)

const dateLayout = "2006-01-02"

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}

func PersonalInfoToResponse(info *entity.PersonalInfo) *dto.PersonalInfoResponse {
	if info == nil {
		return nil
	}

	response := &dto.PersonalInfoResponse{
		Email:     info.UserEmail,
		Gender:    info.Gender,
		Weight:    info.Weight,
		Height:    info.Height,
		BloodType: info.BloodType,
		Work:      info.Work,
	}
	if info.Birthday != nil {
		birthday := info.Birthday.Format(dateLayout)
		response.Birthday = &birthday
	}
	return response
}

func PersonalInfoToPatientDetails(info *entity.PersonalInfo) *dto.PatientDetailsResponse {
	if info == nil {
		return nil
	}

	return &dto.PatientDetailsResponse{
		Email:     info.UserEmail,
		Gender:    info.Gender,
		Weight:    info.Weight,
		Height:    info.Height,
		BloodType: info.BloodType,
	}
}

// PatientSummariesToResponses computes each patient's age as of now.
func PatientSummariesToResponses(patients []entity.PatientSummary, now time.Time) []dto.PatientInfoResponse {
	responses := make([]dto.PatientInfoResponse, len(patients))
	for i, p := range patients {
		responses[i] = dto.PatientInfoResponse{
			Email: p.Email,
			Name:  p.Name,
			Image: blob.Encode(p.Image),
			Age:   entity.AgeAt(p.Birthday, now),
			Work:  p.Work,
		}
	}
	return responses
}

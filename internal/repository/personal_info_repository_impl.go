package repository

import (
	"context"
	"errors"

	"carelink-backend/internal/domain/entity"
	domainRepo "carelink-backend/internal/domain/repository"
	"carelink-backend/internal/infrastructure/database"

	"gorm.io/gorm"
)

type personalInfoRepository struct {
	db *gorm.DB
}

func NewPersonalInfoRepository(db *gorm.DB) domainRepo.PersonalInfoRepository {
	return &personalInfoRepository{db: db}
}

func (r *personalInfoRepository) Create(ctx context.Context, info *entity.PersonalInfo) error {
	return database.Conn(ctx, r.db).Create(info).Error
}

func (r *personalInfoRepository) FindByEmail(ctx context.Context, email string) (*entity.PersonalInfo, error) {
	var info entity.PersonalInfo
	err := database.Conn(ctx, r.db).Where("user_email = ?", email).First(&info).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &info, nil
}

func (r *personalInfoRepository) Update(ctx context.Context, info *entity.PersonalInfo) (bool, error) {
	result := database.Conn(ctx, r.db).Model(&entity.PersonalInfo{}).
		Where("user_email = ?", info.UserEmail).
		Updates(map[string]interface{}{
			"birthday":   info.Birthday,
			"gender":     info.Gender,
			"weight":     info.Weight,
			"height":     info.Height,
			"blood_type": info.BloodType,
			"work":       info.Work,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *personalInfoRepository) FindPatientsByDoctor(ctx context.Context, doctorEmail string) ([]entity.PatientSummary, error) {
	var patients []entity.PatientSummary
	err := database.Conn(ctx, r.db).
		Table("users").
		Select("DISTINCT users.email, users.name, users.image, personal_info.birthday, personal_info.work").
		Joins("JOIN medical_reports ON medical_reports.user_email = users.email").
		Joins("LEFT JOIN personal_info ON personal_info.user_email = users.email").
		Where("medical_reports.doctor_email = ?", doctorEmail).
		Scan(&patients).Error
	return patients, err
}

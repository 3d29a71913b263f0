package usecase

import (
	"context"
	"strings"

	"carelink-backend/internal/converter"
	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/internal/domain/repository"
	"carelink-backend/internal/infrastructure/database"
	"carelink-backend/internal/service"
	"carelink-backend/pkg/apperror"
	"carelink-backend/pkg/blob"

	"github.com/sirupsen/logrus"
)

type DoctorUsecase interface {
	Signup(ctx context.Context, req *dto.DoctorSignupRequest) (*dto.DoctorResponse, error)
	UploadImage(ctx context.Context, req *dto.UploadImageRequest) error
	GetImage(ctx context.Context, email string) ([]byte, error)
	GetAllDoctors(ctx context.Context) ([]dto.DoctorResponse, error)
	GetDoctorDetails(ctx context.Context, email string) (*dto.DoctorDetailResponse, error)
}

type doctorUsecase struct {
	log          *logrus.Logger
	transactor   database.Transactor
	doctorRepo   repository.DoctorRepository
	hasher       service.PasswordHasher
	auditService service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	transactor database.Transactor,
	doctorRepo repository.DoctorRepository,
	hasher service.PasswordHasher,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:          log,
		transactor:   transactor,
		doctorRepo:   doctorRepo,
		hasher:       hasher,
		auditService: auditService,
	}
}

func (u *doctorUsecase) Signup(ctx context.Context, req *dto.DoctorSignupRequest) (*dto.DoctorResponse, error) {
	if names := missing(
		"name", req.Name,
		"email", req.Email,
		"specialty", req.Specialty,
		"license_number", req.LicenseNumber,
		"password", req.Password,
	); len(names) > 0 {
		return nil, apperror.MissingFields(names...)
	}

	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, apperror.Storage(err)
	}

	doctor := &entity.Doctor{
		Name:          req.Name,
		Email:         strings.TrimSpace(req.Email),
		Specialty:     req.Specialty,
		LicenseNumber: req.LicenseNumber,
		Password:      hashedPassword,
		Description:   req.Description,
	}

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.doctorRepo.Create(ctx, doctor); err != nil {
			if isDuplicateKeyError(err, "license") {
				return ErrLicenseAlreadyExists
			}
			if isDuplicateKeyError(err, "") {
				return ErrEmailAlreadyExists
			}
			u.log.Warnf("Failed to create doctor: %+v", err)
			return err
		}

		return u.auditService.LogCreate(ctx, doctor.Email, entity.AuditActionDoctorRegister, "doctor", doctor.ID.String(), map[string]interface{}{
			"name":      doctor.Name,
			"specialty": doctor.Specialty,
		})
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}

	u.log.WithFields(logrus.Fields{"doctor_id": doctor.ID, "email": doctor.Email}).Info("Doctor registered")

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) UploadImage(ctx context.Context, req *dto.UploadImageRequest) error {
	if names := missing("email", req.Email, "image", req.Image); len(names) > 0 {
		return apperror.MissingFields(names...)
	}

	image, err := blob.Decode(req.Image)
	if err != nil {
		return ErrInvalidImage
	}

	updated, err := u.doctorRepo.UpdateImage(ctx, req.Email, image)
	if err != nil {
		u.log.Warnf("Failed to update doctor image: %+v", err)
		return apperror.Storage(err)
	}
	if !updated {
		return ErrDoctorNotFound
	}
	return nil
}

func (u *doctorUsecase) GetImage(ctx context.Context, email string) ([]byte, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperror.MissingFields("email")
	}

	doctor, err := u.doctorRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find doctor by email: %+v", err)
		return nil, apperror.Storage(err)
	}
	if doctor == nil || len(doctor.Image) == 0 {
		return nil, ErrImageNotFound
	}
	return doctor.Image, nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context) ([]dto.DoctorResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, apperror.Storage(err)
	}
	return converter.DoctorsToResponses(doctors), nil
}

func (u *doctorUsecase) GetDoctorDetails(ctx context.Context, email string) (*dto.DoctorDetailResponse, error) {
	doctor, err := u.doctorRepo.FindByEmailWithReviews(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find doctor details: %+v", err)
		return nil, apperror.Storage(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToDetailResponse(doctor), nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

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

const (
	welcomeSubject = "Welcome to CareLink"
	welcomeBody    = "Hi %s,\n\nThanks for signing up. You can now pick a plan and send your reports to a doctor."
)

type UserUsecase interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetAllUsers(ctx context.Context) ([]dto.UserResponse, error)
	UploadImage(ctx context.Context, req *dto.UploadImageRequest) error
	GetImage(ctx context.Context, email string) ([]byte, error)
	UpdatePersonalInfo(ctx context.Context, req *dto.UpdatePersonalInfoRequest) (*dto.PersonalInfoResponse, error)
	GetPatientDetails(ctx context.Context, email string) (*dto.PatientDetailsResponse, error)
	GetPatientsForDoctor(ctx context.Context, doctorEmail string) ([]dto.PatientInfoResponse, error)
}

type userUsecase struct {
	log              *logrus.Logger
	transactor       database.Transactor
	userRepo         repository.UserRepository
	personalInfoRepo repository.PersonalInfoRepository
	hasher           service.PasswordHasher
	notifier         service.Notifier
	auditService     service.AuditService
	now              func() time.Time
}

func NewUserUsecase(
	log *logrus.Logger,
	transactor database.Transactor,
	userRepo repository.UserRepository,
	personalInfoRepo repository.PersonalInfoRepository,
	hasher service.PasswordHasher,
	notifier service.Notifier,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		log:              log,
		transactor:       transactor,
		userRepo:         userRepo,
		personalInfoRepo: personalInfoRepo,
		hasher:           hasher,
		notifier:         notifier,
		auditService:     auditService,
		now:              time.Now,
	}
}

// CreateUser provisions a User and its empty PersonalInfo row atomically.
// The welcome mail is queued only after commit and cannot fail the signup.
func (u *userUsecase) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(req.Email)
	if names := missing("name", req.Name, "email", email, "password", req.Password); len(names) > 0 {
		return nil, apperror.MissingFields(names...)
	}

	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, apperror.Storage(err)
	}

	user := &entity.User{
		Name:     req.Name,
		Email:    email,
		Password: hashedPassword,
	}

	err = u.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Create(ctx, user); err != nil {
			if isDuplicateKeyError(err, "email") {
				return ErrEmailAlreadyExists
			}
			u.log.Warnf("Failed to create user: %+v", err)
			return err
		}

		if err := u.personalInfoRepo.Create(ctx, &entity.PersonalInfo{UserEmail: user.Email}); err != nil {
			u.log.Warnf("Failed to create personal info: %+v", err)
			return err
		}

		return u.auditService.LogCreate(ctx, user.Email, entity.AuditActionUserRegister, "user", user.ID.String(), map[string]interface{}{
			"name":  user.Name,
			"email": user.Email,
		})
	})
	if err != nil {
		return nil, apperror.Storage(err)
	}

	u.notifier.Notify(user.Email, welcomeSubject, fmt.Sprintf(welcomeBody, user.Name))

	u.log.WithFields(logrus.Fields{"user_id": user.ID, "email": user.Email}).Info("User registered")

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) GetAllUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, apperror.Storage(err)
	}
	return converter.UsersToResponses(users), nil
}

func (u *userUsecase) UploadImage(ctx context.Context, req *dto.UploadImageRequest) error {
	if names := missing("email", req.Email, "image", req.Image); len(names) > 0 {
		return apperror.MissingFields(names...)
	}

	image, err := blob.Decode(req.Image)
	if err != nil {
		return ErrInvalidImage
	}

	updated, err := u.userRepo.UpdateImage(ctx, req.Email, image)
	if err != nil {
		u.log.Warnf("Failed to update user image: %+v", err)
		return apperror.Storage(err)
	}
	if !updated {
		return ErrUserNotFound
	}
	return nil
}

func (u *userUsecase) GetImage(ctx context.Context, email string) ([]byte, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperror.MissingFields("email")
	}

	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, apperror.Storage(err)
	}
	if user == nil || len(user.Image) == 0 {
		return nil, ErrImageNotFound
	}
	return user.Image, nil
}

func (u *userUsecase) UpdatePersonalInfo(ctx context.Context, req *dto.UpdatePersonalInfoRequest) (*dto.PersonalInfoResponse, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, apperror.MissingFields("email")
	}

	info := &entity.PersonalInfo{
		UserEmail: req.Email,
		Gender:    req.Gender,
		BloodType: req.BloodType,
		Work:      req.Work,
	}
	if req.Birthday != "" {
		birthday, err := time.Parse(dateLayout, req.Birthday)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		info.Birthday = &birthday
	}
	if req.Weight != nil {
		info.Weight.Decimal, info.Weight.Valid = *req.Weight, true
	}
	if req.Height != nil {
		info.Height.Decimal, info.Height.Valid = *req.Height, true
	}

	updated, err := u.personalInfoRepo.Update(ctx, info)
	if err != nil {
		u.log.Warnf("Failed to update personal info: %+v", err)
		return nil, apperror.Storage(err)
	}
	if !updated {
		return nil, ErrPersonalInfoNotFound
	}

	return converter.PersonalInfoToResponse(info), nil
}

func (u *userUsecase) GetPatientDetails(ctx context.Context, email string) (*dto.PatientDetailsResponse, error) {
	if strings.TrimSpace(email) == "" {
		return nil, apperror.MissingFields("email")
	}

	info, err := u.personalInfoRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find personal info: %+v", err)
		return nil, apperror.Storage(err)
	}
	if info == nil {
		return nil, ErrPersonalInfoNotFound
	}
	return converter.PersonalInfoToPatientDetails(info), nil
}

func (u *userUsecase) GetPatientsForDoctor(ctx context.Context, doctorEmail string) ([]dto.PatientInfoResponse, error) {
	if strings.TrimSpace(doctorEmail) == "" {
		return nil, apperror.MissingFields("doctorEmail")
	}

	patients, err := u.personalInfoRepo.FindPatientsByDoctor(ctx, doctorEmail)
	if err != nil {
		u.log.Warnf("Failed to find patients for doctor: %+v", err)
		return nil, apperror.Storage(err)
	}
	return converter.PatientSummariesToResponses(patients, u.now()), nil
}

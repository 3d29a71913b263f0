package usecase

import (
	"context"
	"errors"

	"carelink-backend/internal/delivery/dto"
	"carelink-backend/internal/domain/entity"
	"carelink-backend/internal/domain/repository"
	"carelink-backend/internal/service"
	"carelink-backend/pkg/apperror"
	"carelink-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AuthUsecase interface {
	LoginUser(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	LoginDoctor(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, subjectID uuid.UUID, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentAccount(ctx context.Context, subjectID uuid.UUID, email, role string) (*dto.AccountSummary, error)
	IsTokenValid(ctx context.Context, subjectID uuid.UUID, tokenID string) (bool, error)
}

type authUsecase struct {
	log        *logrus.Logger
	userRepo   repository.UserRepository
	doctorRepo repository.DoctorRepository
	hasher     service.PasswordHasher
	jwtService *jwt.JWTService
	tokenStore service.TokenStore
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	hasher service.PasswordHasher,
	jwtService *jwt.JWTService,
	tokenStore service.TokenStore,
) AuthUsecase {
	return &authUsecase{
		log:        log,
		userRepo:   userRepo,
		doctorRepo: doctorRepo,
		hasher:     hasher,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

func (u *authUsecase) LoginUser(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, apperror.Storage(err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	account := dto.AccountSummary{ID: user.ID, Name: user.Name, Email: user.Email, Role: entity.RolePatient}
	return u.login(ctx, account, user.Password, req.Password)
}

func (u *authUsecase) LoginDoctor(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	doctor, err := u.doctorRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find doctor by email: %+v", err)
		return nil, apperror.Storage(err)
	}
	if doctor == nil {
		return nil, ErrInvalidCredentials
	}

	account := dto.AccountSummary{ID: doctor.ID, Name: doctor.Name, Email: doctor.Email, Role: entity.RoleDoctor}
	return u.login(ctx, account, doctor.Password, req.Password)
}

func (u *authUsecase) login(ctx context.Context, account dto.AccountSummary, hash, password string) (*dto.LoginResponse, error) {
	if err := u.hasher.Compare(hash, password); err != nil {
		if !errors.Is(err, service.ErrPasswordMismatch) {
			u.log.Warnf("Failed to verify password: %+v", err)
		}
		return nil, ErrInvalidCredentials
	}

	tokens, err := u.issueTokens(ctx, account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{User: account, TokenResponse: *tokens}, nil
}

func (u *authUsecase) Logout(ctx context.Context, subjectID uuid.UUID, accessTokenID, refreshTokenID string) error {
	if err := u.tokenStore.Delete(ctx, jwt.AccessToken, subjectID, accessTokenID); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return apperror.Storage(err)
	}

	if refreshTokenID != "" {
		if err := u.tokenStore.Delete(ctx, jwt.RefreshToken, subjectID, refreshTokenID); err != nil {
			u.log.Warnf("Failed to delete refresh token: %+v", err)
			return apperror.Storage(err)
		}
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	exists, err := u.tokenStore.Exists(ctx, jwt.RefreshToken, claims.UserID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, apperror.Storage(err)
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	// Refresh tokens are single use.
	if err := u.tokenStore.Delete(ctx, jwt.RefreshToken, claims.UserID, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, apperror.Storage(err)
	}

	return u.issueTokens(ctx, claims.UserID, claims.Email, claims.Role)
}

// GetCurrentAccount resolves the token subject. Doctors are keyed by email,
// so their id is only checked against the row found.
func (u *authUsecase) GetCurrentAccount(ctx context.Context, subjectID uuid.UUID, email, role string) (*dto.AccountSummary, error) {
	if role == entity.RoleDoctor {
		doctor, err := u.doctorRepo.FindByEmail(ctx, email)
		if err != nil {
			u.log.Warnf("Failed to find doctor by email: %+v", err)
			return nil, apperror.Storage(err)
		}
		if doctor == nil || doctor.ID != subjectID {
			return nil, ErrDoctorNotFound
		}
		return &dto.AccountSummary{ID: doctor.ID, Name: doctor.Name, Email: doctor.Email, Role: entity.RoleDoctor}, nil
	}

	user, err := u.userRepo.FindByID(ctx, subjectID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, apperror.Storage(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return &dto.AccountSummary{ID: user.ID, Name: user.Name, Email: user.Email, Role: entity.RolePatient}, nil
}

func (u *authUsecase) IsTokenValid(ctx context.Context, subjectID uuid.UUID, tokenID string) (bool, error) {
	exists, err := u.tokenStore.Exists(ctx, jwt.AccessToken, subjectID, tokenID)
	if err != nil {
		u.log.Warnf("Failed to check token validity: %+v", err)
		return false, err
	}
	return exists, nil
}

func (u *authUsecase) issueTokens(ctx context.Context, subjectID uuid.UUID, email, role string) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(subjectID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, apperror.Storage(err)
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(subjectID, email, role)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, apperror.Storage(err)
	}

	if err := u.tokenStore.Store(ctx, jwt.AccessToken, subjectID, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, apperror.Storage(err)
	}

	if err := u.tokenStore.Store(ctx, jwt.RefreshToken, subjectID, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, apperror.Storage(err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}

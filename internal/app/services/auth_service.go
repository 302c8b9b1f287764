package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/vmerk/tutorium/internal/app/models"
	"github.com/vmerk/tutorium/internal/app/models/dto"
	"github.com/vmerk/tutorium/internal/app/repositories"
	"github.com/vmerk/tutorium/internal/pkg/apperrors"
	"github.com/vmerk/tutorium/internal/pkg/auth"
	"github.com/vmerk/tutorium/internal/pkg/logger"
	"github.com/vmerk/tutorium/internal/pkg/validation"
)

// AuthService handles registration, login and token refresh
type AuthService struct {
	userRepo   *repositories.UserRepository
	tokenRepo  *repositories.TokenRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtService: jwtService,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	if !validation.IsValidEmail(email) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}
	return nil
}

// validatePassword checks if the password meets requirements. Shared with
// the password-change path in UserService.
func validatePassword(password string) error {
	if len(password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters long",
			apperrors.ErrValidationFailed, validation.PasswordMinLength)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrValidationFailed)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrValidationFailed)
	}

	return nil
}

// userFromRegisterRequest builds the user model with the role attribute
// bundle attached for the requested role.
func userFromRegisterRequest(req *dto.RegisterRequest) (*models.User, models.Role, error) {
	birthday, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		return nil, "", fmt.Errorf("%w: birthday must be YYYY-MM-DD", apperrors.ErrValidationFailed)
	}

	u := &models.User{
		FullName:    strings.TrimSpace(req.FullName),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Birthday:    birthday,
		Gender:      models.Gender(req.Gender),
		City:        req.City,
		PhoneNumber: req.PhoneNumber,
	}

	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, "", apperrors.ErrInvalidRole
	}
	switch role {
	case models.RoleStudent:
		u.Student = &models.Student{ClassNumber: req.ClassNumber, SchoolName: req.SchoolName}
	case models.RoleTeacher:
		teacher := &models.Teacher{}
		if req.Experience != nil {
			teacher.Experience = *req.Experience
		}
		if req.MainWork != nil {
			teacher.MainWork = *req.MainWork
		}
		u.Teacher = teacher
	case models.RoleParent:
		u.Parent = &models.Parent{WorkName: req.WorkName, WorkPhone: req.WorkPhone}
	case models.RoleAdministrator:
		admin := &models.Administrator{}
		if req.AccessLevel != nil {
			level := models.AccessLevel(*req.AccessLevel)
			admin.AccessLevel = &level
		}
		u.Administrator = admin
	}

	return u, role, nil
}

// Register creates a user with one role record and signs them in
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}
	if !validation.IsValidPhone(req.PhoneNumber) {
		return nil, fmt.Errorf("%w: invalid phone number format", apperrors.ErrValidationFailed)
	}

	u, role, err := userFromRegisterRequest(req)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	u.PasswordHash = hash

	if err := s.userRepo.CreateUserWithRole(ctx, u, role); err != nil {
		return nil, err
	}

	logger.Info().Int64("userID", u.ID).Str("role", string(role)).Msg("User registered")

	return s.issueTokens(ctx, u)
}

// Login authenticates a user by email and password. The bcrypt compare runs
// even when the email is unknown so both outcomes take comparable time.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	if u == nil {
		auth.BurnPasswordCheck(req.Password)
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	full, err := s.userRepo.GetWithRoles(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("error loading user roles: %w", err)
	}

	return s.issueTokens(ctx, full)
}

// RefreshToken exchanges a live refresh token for a fresh pair. The used
// token is revoked; refresh tokens are single-use.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	userID, err := s.tokenRepo.GetTokenUser(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) ||
			errors.Is(err, apperrors.ErrTokenRevoked) ||
			errors.Is(err, apperrors.ErrTokenExpired) {
			return nil, err
		}
		return nil, fmt.Errorf("error resolving refresh token: %w", err)
	}

	u, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("error revoking refresh token: %w", err)
	}

	return s.issueTokens(ctx, u)
}

// Logout revokes every live refresh token of a user
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.tokenRepo.RevokeUserTokens(ctx, userID)
}

// issueTokens signs an access token, stores the refresh token and builds the
// auth response.
func (s *AuthService) issueTokens(ctx context.Context, u *models.User) (*dto.AuthResponse, error) {
	roles := repositories.RolesOf(u)

	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(u, roles)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	refreshExpiry := s.jwtService.GetRefreshTokenExpiry()
	if err := s.tokenRepo.CreateToken(ctx, refreshToken, u.ID, refreshExpiry); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(expiresIn),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: int64(time.Until(refreshExpiry).Seconds()),
		},
		User: dto.ToUserResponse(u, roles),
	}, nil
}

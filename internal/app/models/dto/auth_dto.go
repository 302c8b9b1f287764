package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken           string `json:"accessToken"`
	TokenType             string `json:"tokenType" example:"Bearer"`
	ExpiresIn             int64  `json:"expiresIn"`
	RefreshToken          string `json:"refreshToken,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refreshTokenExpiresIn,omitempty"`
}

// RefreshTokenRequest represents a refresh token exchange request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RegisterRequest represents a user registration request. Exactly one role is
// created with the identity; further roles are added through the user API.
type RegisterRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Birthday    string `json:"birthday" binding:"required" example:"1990-05-12"`
	Gender      string `json:"gender" binding:"required,oneof=male female"`
	City        string `json:"city" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Role        string `json:"role" binding:"required,oneof=student teacher parent administrator"`

	// Role-specific fields, read for the matching role only
	ClassNumber *int    `json:"classNumber,omitempty"`
	SchoolName  *string `json:"schoolName,omitempty"`
	Experience  *int    `json:"experience,omitempty"`
	MainWork    *string `json:"mainWork,omitempty"`
	WorkName    *string `json:"workName,omitempty"`
	WorkPhone   *string `json:"workPhone,omitempty"`
	AccessLevel *string `json:"accessLevel,omitempty" binding:"omitempty,oneof=logs full"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *UserResponse `json:"user"`
}

// CheckResponse represents the identity probe payload
type CheckResponse struct {
	UserID int64    `json:"userId"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}

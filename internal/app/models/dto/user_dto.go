package dto

import (
	"time"

	"github.com/vmerk/tutorium/internal/app/models"
)

// UserResponse represents identity information with any role records attached
type UserResponse struct {
	ID                int64                 `json:"id"`
	FullName          string                `json:"fullName"`
	Email             string                `json:"email"`
	Birthday          string                `json:"birthday" example:"1990-05-12"`
	Gender            string                `json:"gender"`
	City              string                `json:"city"`
	PhoneNumber       string                `json:"phoneNumber"`
	ProfilePictureURL *string               `json:"profilePictureUrl,omitempty"`
	UniqueCode        string                `json:"uniqueCode"`
	Roles             []string              `json:"roles"`
	Student           *models.Student       `json:"student,omitempty"`
	Teacher           *models.Teacher       `json:"teacher,omitempty"`
	Parent            *models.Parent        `json:"parent,omitempty"`
	Administrator     *models.Administrator `json:"administrator,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
}

// ToUserResponse maps a user model with its role records to the API shape
func ToUserResponse(u *models.User, roles []models.Role) *UserResponse {
	if u == nil {
		return nil
	}

	roleNames := make([]string, 0, len(roles))
	for _, r := range roles {
		roleNames = append(roleNames, string(r))
	}

	return &UserResponse{
		ID:                u.ID,
		FullName:          u.FullName,
		Email:             u.Email,
		Birthday:          u.Birthday.Format("2006-01-02"),
		Gender:            string(u.Gender),
		City:              u.City,
		PhoneNumber:       u.PhoneNumber,
		ProfilePictureURL: u.ProfilePictureURL,
		UniqueCode:        u.UniqueCode,
		Roles:             roleNames,
		Student:           u.Student,
		Teacher:           u.Teacher,
		Parent:            u.Parent,
		Administrator:     u.Administrator,
		CreatedAt:         u.CreatedAt,
	}
}

// UpdateUserRequest represents a partial identity update. Absent fields stay
// unchanged.
type UpdateUserRequest struct {
	FullName          *string `json:"fullName,omitempty"`
	Email             *string `json:"email,omitempty" binding:"omitempty,email"`
	Password          *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Birthday          *string `json:"birthday,omitempty" example:"1990-05-12"`
	Gender            *string `json:"gender,omitempty" binding:"omitempty,oneof=male female"`
	City              *string `json:"city,omitempty"`
	PhoneNumber       *string `json:"phoneNumber,omitempty"`
	ProfilePictureURL *string `json:"profilePictureUrl,omitempty"`
}

// AddRoleRequest represents attaching an additional role record to a user
type AddRoleRequest struct {
	Role models.Role `json:"role" binding:"required,oneof=student teacher parent administrator"`

	ClassNumber *int    `json:"classNumber,omitempty"`
	SchoolName  *string `json:"schoolName,omitempty"`
	Experience  *int    `json:"experience,omitempty"`
	MainWork    *string `json:"mainWork,omitempty"`
	WorkName    *string `json:"workName,omitempty"`
	WorkPhone   *string `json:"workPhone,omitempty"`
	AccessLevel *string `json:"accessLevel,omitempty" binding:"omitempty,oneof=logs full"`
}

// UpdateStudentRequest updates the student role record
type UpdateStudentRequest struct {
	ClassNumber *int    `json:"classNumber,omitempty"`
	SchoolName  *string `json:"schoolName,omitempty"`
}

// UpdateTeacherRequest updates the teacher role record
type UpdateTeacherRequest struct {
	Experience *int    `json:"experience,omitempty"`
	MainWork   *string `json:"mainWork,omitempty"`
}

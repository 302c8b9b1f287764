package models

import (
	"time"
)

// User defines the identity record based on the 'users' table. The optional
// role records model a person who may hold several roles at the same time;
// each role record shares the user's primary key.
type User struct {
	ID                int64     `json:"id" db:"id" example:"1"`
	FullName          string    `json:"fullName" db:"full_name" example:"Anna Petrova"`
	Email             string    `json:"email" db:"email" example:"anna@example.com"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	Birthday          time.Time `json:"birthday" db:"birthday" example:"1990-05-12T00:00:00Z"`
	Gender            Gender    `json:"gender" db:"gender" example:"female"`
	City              string    `json:"city" db:"city" example:"Moscow"`
	PhoneNumber       string    `json:"phoneNumber" db:"phone_number" example:"+79150000000"`
	ProfilePictureURL *string   `json:"profilePictureUrl,omitempty" db:"profile_picture_url"`
	UniqueCode        string    `json:"uniqueCode" db:"unique_code" example:"x7Kp2mQz"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`

	Student       *Student       `json:"student,omitempty"`       // Relation, no db tag
	Teacher       *Teacher       `json:"teacher,omitempty"`       // Relation, no db tag
	Parent        *Parent        `json:"parent,omitempty"`        // Relation, no db tag
	Administrator *Administrator `json:"administrator,omitempty"` // Relation, no db tag
}

// Student defines the student role record based on the 'students' table
type Student struct {
	UserID      int64   `json:"userId" db:"user_id"`
	ClassNumber *int    `json:"classNumber,omitempty" db:"class_number"`
	SchoolName  *string `json:"schoolName,omitempty" db:"school_name"`
	User        *User   `json:"user,omitempty"` // Relation, no db tag
}

// Teacher defines the teacher role record based on the 'teachers' table
type Teacher struct {
	UserID     int64  `json:"userId" db:"user_id"`
	Experience int    `json:"experience" db:"experience"`
	MainWork   string `json:"mainWork" db:"main_work"`
	User       *User  `json:"user,omitempty"` // Relation, no db tag
}

// Parent defines the parent role record based on the 'parents' table
type Parent struct {
	UserID    int64   `json:"userId" db:"user_id"`
	WorkName  *string `json:"workName,omitempty" db:"work_name"`
	WorkPhone *string `json:"workPhone,omitempty" db:"work_phone"`
	User      *User   `json:"user,omitempty"` // Relation, no db tag
}

// Administrator defines the administrator role record based on the
// 'administrators' table
type Administrator struct {
	UserID      int64        `json:"userId" db:"user_id"`
	AccessLevel *AccessLevel `json:"accessLevel,omitempty" db:"access_level"`
	User        *User        `json:"user,omitempty"` // Relation, no db tag
}

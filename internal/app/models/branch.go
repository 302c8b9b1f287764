package models

import "time"

// Branch defines a physical office location based on the 'branches' table.
// Working hours are stored as time-of-day strings in HH:MM:SS form, matching
// the TIME columns.
type Branch struct {
	ID              int64     `json:"id" db:"id"`
	Address         *string   `json:"address,omitempty" db:"address"`
	WorkingStart    string    `json:"workingStart" db:"working_start" example:"09:00:00"`
	WorkingEnd      string    `json:"workingEnd" db:"working_end" example:"20:00:00"`
	Description     *string   `json:"description,omitempty" db:"description"`
	PhotoURL        *string   `json:"photoUrl,omitempty" db:"photo_url"`
	AdministratorID int64     `json:"administratorId" db:"administrator_id"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// Classroom defines a room inside a branch based on the 'classrooms' table
type Classroom struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Description     *string   `json:"description,omitempty" db:"description"`
	BranchID        int64     `json:"branchId" db:"branch_id"`
	AdministratorID int64     `json:"administratorId" db:"administrator_id"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

package models

import "time"

// Discipline defines a taught subject based on the 'disciplines' table.
// Every discipline is owned by the administrator who created it.
type Discipline struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name" example:"Speech therapy"`
	Description     string    `json:"description" db:"description"`
	AdministratorID int64     `json:"administratorId" db:"administrator_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

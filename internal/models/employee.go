package models

import (
	"time"
)

type Position struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Position) EntryID() uint64   { return p.ID }
func (p Position) EntryName() string { return p.Name }

type Employee struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName     string    `gorm:"type:varchar(150)" json:"last_name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	PositionID   uint64    `gorm:"not null;index" json:"position_id"`
	Slug         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Position Position `gorm:"foreignKey:PositionID;constraint:OnDelete:RESTRICT" json:"position,omitempty"`
	Teams    []Team   `gorm:"many2many:team_members" json:"-"`
}

// FullName mirrors how employees are shown across the UI.
func (e Employee) FullName() string {
	switch {
	case e.FirstName == "" && e.LastName == "":
		return e.Username
	case e.LastName == "":
		return e.FirstName
	case e.FirstName == "":
		return e.LastName
	}
	return e.FirstName + " " + e.LastName
}

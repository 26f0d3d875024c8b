package models

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
)

type Invitation struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Email       string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	PositionID  uint64    `gorm:"not null;index" json:"position_id"`
	InvitedByID uint64    `gorm:"not null;index" json:"invited_by_id"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	IsAccepted  bool      `gorm:"not null;default:false" json:"is_accepted"`
	Slug        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`

	// Relations
	Position  Position `gorm:"foreignKey:PositionID;constraint:OnDelete:CASCADE" json:"position,omitempty"`
	InvitedBy Employee `gorm:"foreignKey:InvitedByID;constraint:OnDelete:CASCADE" json:"invited_by,omitempty"`
}

// Status derives the lifecycle state from the accepted flag.
func (i Invitation) Status() InvitationStatus {
	if i.IsAccepted {
		return InvitationAccepted
	}
	return InvitationPending
}

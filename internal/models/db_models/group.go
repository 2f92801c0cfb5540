package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Group struct {
	BaseModel
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Currency    string    `gorm:"size:3;default:AED" json:"currency"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;index;not null" json:"createdBy"`

	// Emails invited so far, kept denormalized for quick duplicate checks.
	InviteEmails pq.StringArray `gorm:"type:text[]" json:"-"`

	Members  []GroupMember  `gorm:"foreignKey:GroupID" json:"members"`
	Balances []GroupBalance `gorm:"foreignKey:GroupID" json:"balances"`

	Creator User `gorm:"foreignKey:CreatedBy" json:"-"`
}

// GroupMember is a child row with a stable id; UserID stays nil until the
// invitee registers an account.
type GroupMember struct {
	BaseModel
	GroupID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_group_member_email" json:"groupId"`
	UserID   *uuid.UUID `gorm:"type:uuid;index" json:"userId,omitempty"`
	Name     string     `gorm:"not null" json:"name"`
	Email    string     `gorm:"not null;uniqueIndex:idx_group_member_email" json:"email"`
	JoinedAt int64      `json:"joinedAt"`
	IsActive bool       `gorm:"default:true" json:"isActive"`
}

type GroupBalance struct {
	BaseModel
	GroupID uuid.UUID `gorm:"type:uuid;index;not null" json:"groupId"`
	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Balance float64   `gorm:"default:0" json:"balance"`
}

package model

import "time"

// Membership permission levels.
const (
	PermissionMember    = 0
	PermissionModerator = 1
	PermissionOwner     = 2
)

type Membership struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	ClubID          string    `json:"club_id" db:"club_id"`
	PermissionLevel int       `json:"permission_level" db:"permission_level"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

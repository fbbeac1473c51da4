package model

import "time"

type Meeting struct {
	ID          string    `json:"id" db:"id"`
	ClubID      string    `json:"club_id" db:"club_id"`
	BookID      *string   `json:"book_id,omitempty" db:"book_id"`
	Location    string    `json:"location" db:"location"`
	ScheduledAt time.Time `json:"scheduled_at" db:"scheduled_at"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type Attendance struct {
	ID        string    `json:"id" db:"id"`
	MeetingID string    `json:"meeting_id" db:"meeting_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

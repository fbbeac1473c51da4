package request

import "time"

type CreateMeeting struct {
	ClubID      string    `json:"club_id" validate:"required"`
	BookID      *string   `json:"book_id"`
	Location    string    `json:"location" validate:"required,min=1,max=512"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

type UpdateMeeting struct {
	BookID      *string   `json:"book_id"`
	Location    string    `json:"location" validate:"required,min=1,max=512"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
}

type CreateAttendance struct {
	UserID string `json:"user_id" validate:"required"`
}

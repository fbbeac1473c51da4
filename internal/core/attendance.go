package core

import (
	"context"
	"fmt"

	"github.com/edvin/bookclub/internal/model"
)

type AttendanceService struct {
	db DB
}

func NewAttendanceService(db DB) *AttendanceService {
	return &AttendanceService{db: db}
}

func (s *AttendanceService) Create(ctx context.Context, a *model.Attendance) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO attendance (id, meeting_id, user_id, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.MeetingID, a.UserID, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s already attends meeting %s", a.UserID, a.MeetingID)
		}
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

func (s *AttendanceService) ListByMeeting(ctx context.Context, meetingID string) ([]model.Attendance, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, meeting_id, user_id, created_at FROM attendance WHERE meeting_id = $1 ORDER BY id`,
		meetingID,
	)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var records []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.MeetingID, &a.UserID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return records, nil
}

func (s *AttendanceService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete attendance %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("attendance %s not found", id)
	}
	return nil
}

package core

import (
	"context"
	"fmt"

	"github.com/edvin/bookclub/internal/model"
)

type MeetingService struct {
	db DB
}

func NewMeetingService(db DB) *MeetingService {
	return &MeetingService{db: db}
}

const meetingColumns = `id, club_id, book_id, location, scheduled_at, created_at, updated_at`

func (s *MeetingService) Create(ctx context.Context, m *model.Meeting) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO meetings (id, club_id, book_id, location, scheduled_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ClubID, m.BookID, m.Location, m.ScheduledAt, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}
	return nil
}

func (s *MeetingService) GetByID(ctx context.Context, id string) (*model.Meeting, error) {
	var m model.Meeting
	err := s.db.QueryRow(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id,
	).Scan(&m.ID, &m.ClubID, &m.BookID, &m.Location, &m.ScheduledAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get meeting %s: %w", id, err)
	}
	return &m, nil
}

func (s *MeetingService) ListByClub(ctx context.Context, clubID string) ([]model.Meeting, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+meetingColumns+` FROM meetings WHERE club_id = $1 ORDER BY scheduled_at`, clubID,
	)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []model.Meeting
	for rows.Next() {
		var m model.Meeting
		if err := rows.Scan(&m.ID, &m.ClubID, &m.BookID, &m.Location, &m.ScheduledAt, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		meetings = append(meetings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meetings: %w", err)
	}
	return meetings, nil
}

func (s *MeetingService) Update(ctx context.Context, m *model.Meeting) error {
	_, err := s.db.Exec(ctx,
		`UPDATE meetings SET book_id = $1, location = $2, scheduled_at = $3, updated_at = now() WHERE id = $4`,
		m.BookID, m.Location, m.ScheduledAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update meeting %s: %w", m.ID, err)
	}
	return nil
}

func (s *MeetingService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete meeting %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("meeting %s not found", id)
	}
	return nil
}

package core

import (
	"context"
	"fmt"

	"github.com/edvin/bookclub/internal/model"
)

type MembershipService struct {
	db DB
}

func NewMembershipService(db DB) *MembershipService {
	return &MembershipService{db: db}
}

func (s *MembershipService) Create(ctx context.Context, m *model.Membership) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO memberships (id, user_id, club_id, permission_level, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.UserID, m.ClubID, m.PermissionLevel, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s is already a member of club %s", m.UserID, m.ClubID)
		}
		return fmt.Errorf("create membership: %w", err)
	}
	return nil
}

func (s *MembershipService) GetByID(ctx context.Context, id string) (*model.Membership, error) {
	var m model.Membership
	err := s.db.QueryRow(ctx,
		`SELECT id, user_id, club_id, permission_level, created_at FROM memberships WHERE id = $1`, id,
	).Scan(&m.ID, &m.UserID, &m.ClubID, &m.PermissionLevel, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get membership %s: %w", id, err)
	}
	return &m, nil
}

// ListByClub returns all memberships of a club.
func (s *MembershipService) ListByClub(ctx context.Context, clubID string) ([]model.Membership, error) {
	return s.list(ctx, "club_id", clubID)
}

// ListByUser returns all memberships held by a user.
func (s *MembershipService) ListByUser(ctx context.Context, userID string) ([]model.Membership, error) {
	return s.list(ctx, "user_id", userID)
}

func (s *MembershipService) list(ctx context.Context, col, val string) ([]model.Membership, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, club_id, permission_level, created_at FROM memberships WHERE `+col+` = $1 ORDER BY id`,
		val,
	)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []model.Membership
	for rows.Next() {
		var m model.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.ClubID, &m.PermissionLevel, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memberships: %w", err)
	}
	return memberships, nil
}

func (s *MembershipService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM memberships WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete membership %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("membership %s not found", id)
	}
	return nil
}

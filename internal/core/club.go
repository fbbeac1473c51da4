package core

import (
	"context"
	"fmt"

	"github.com/edvin/bookclub/internal/model"
)

type ClubService struct {
	db DB
}

func NewClubService(db DB) *ClubService {
	return &ClubService{db: db}
}

func (s *ClubService) Create(ctx context.Context, club *model.Club) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO clubs (id, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		club.ID, club.Name, club.Description, club.CreatedAt, club.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create club: %w", err)
	}
	return nil
}

func (s *ClubService) GetByID(ctx context.Context, id string) (*model.Club, error) {
	var c model.Club
	err := s.db.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM clubs WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get club %s: %w", id, err)
	}
	return &c, nil
}

func (s *ClubService) List(ctx context.Context, limit int, cursor string) ([]model.Club, bool, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM clubs`
	args := []any{}
	argIdx := 1

	if cursor != "" {
		query += fmt.Sprintf(` WHERE id > $%d`, argIdx)
		args = append(args, cursor)
		argIdx++
	}

	query += ` ORDER BY id`
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list clubs: %w", err)
	}
	defer rows.Close()

	var clubs []model.Club
	for rows.Next() {
		var c model.Club
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, false, fmt.Errorf("scan club: %w", err)
		}
		clubs = append(clubs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate clubs: %w", err)
	}

	hasMore := len(clubs) > limit
	if hasMore {
		clubs = clubs[:limit]
	}
	return clubs, hasMore, nil
}

func (s *ClubService) Update(ctx context.Context, club *model.Club) error {
	_, err := s.db.Exec(ctx,
		`UPDATE clubs SET name = $1, description = $2, updated_at = now() WHERE id = $3`,
		club.Name, club.Description, club.ID,
	)
	if err != nil {
		return fmt.Errorf("update club %s: %w", club.ID, err)
	}
	return nil
}

func (s *ClubService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM clubs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete club %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("club %s not found", id)
	}
	return nil
}

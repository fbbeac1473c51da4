package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/edvin/bookclub/internal/model"
	"github.com/edvin/bookclub/internal/platform"
)

// UserService owns the user directory: lookup, search, and the
// create-on-first-login path driven by a verified external identity.
type UserService struct {
	db DB
}

func NewUserService(db DB) *UserService {
	return &UserService{db: db}
}

const userColumns = `id, email, first_name, last_name, created_at, updated_at`

// ResolveOrCreate maps a verified identity to a local user, creating one on
// first login. The unique constraint on email resolves concurrent first
// logins: a losing inserter observes the unique violation and retries as a
// lookup, so exactly one row exists per identity.
func (s *UserService) ResolveOrCreate(ctx context.Context, identity *VerifiedIdentity) (*model.User, error) {
	user, err := s.GetByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	firstName, lastName := identity.GivenName, identity.FamilyName
	if firstName == "" {
		firstName = "Reader"
	}
	if lastName == "" {
		lastName = "Unknown"
	}

	var u model.User
	err = s.db.QueryRow(ctx,
		`INSERT INTO users (id, email, first_name, last_name)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		platform.NewID(), identity.Email, firstName, lastName,
	).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return s.GetByEmail(ctx, identity.Email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

// GetByEmail returns the raw row error on miss so ResolveOrCreate can
// distinguish "no such user" from storage failure.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) List(ctx context.Context, limit int, cursor string) ([]model.User, bool, error) {
	query := `SELECT ` + userColumns + ` FROM users`
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
		return nil, false, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, false, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate users: %w", err)
	}

	hasMore := len(users) > limit
	if hasMore {
		users = users[:limit]
	}
	return users, hasMore, nil
}

// UserSearch holds optional exact-match search filters.
type UserSearch struct {
	Email     string
	FirstName string
	LastName  string
}

func (f UserSearch) empty() bool {
	return f.Email == "" && f.FirstName == "" && f.LastName == ""
}

func (s *UserService) Search(ctx context.Context, filter UserSearch) ([]model.User, error) {
	if filter.empty() {
		return nil, fmt.Errorf("search users: no filters provided")
	}

	var conds []string
	args := []any{}
	addCond := func(col, val string) {
		if val != "" {
			args = append(args, val)
			conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
		}
	}
	addCond("email", filter.Email)
	addCond("first_name", filter.FirstName)
	addCond("last_name", filter.LastName)

	query := `SELECT ` + userColumns + ` FROM users WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY id`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (s *UserService) Update(ctx context.Context, user *model.User) error {
	_, err := s.db.Exec(ctx,
		`UPDATE users SET email = $1, first_name = $2, last_name = $3, updated_at = now() WHERE id = $4`,
		user.Email, user.FirstName, user.LastName, user.ID,
	)
	if err != nil {
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", id)
	}
	return nil
}

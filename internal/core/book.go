package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/edvin/bookclub/internal/model"
)

type BookService struct {
	db DB
}

func NewBookService(db DB) *BookService {
	return &BookService{db: db}
}

func (s *BookService) Create(ctx context.Context, book *model.Book) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO books (id, title, author, created_at) VALUES ($1, $2, $3, $4)`,
		book.ID, book.Title, book.Author, book.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (s *BookService) GetByID(ctx context.Context, id string) (*model.Book, error) {
	var b model.Book
	err := s.db.QueryRow(ctx,
		`SELECT id, title, author, created_at FROM books WHERE id = $1`, id,
	).Scan(&b.ID, &b.Title, &b.Author, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get book %s: %w", id, err)
	}
	return &b, nil
}

func (s *BookService) List(ctx context.Context, limit int, cursor string) ([]model.Book, bool, error) {
	query := `SELECT id, title, author, created_at FROM books`
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
		return nil, false, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CreatedAt); err != nil {
			return nil, false, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate books: %w", err)
	}

	hasMore := len(books) > limit
	if hasMore {
		books = books[:limit]
	}
	return books, hasMore, nil
}

// Search matches books by title substring and/or exact author.
func (s *BookService) Search(ctx context.Context, title, author string) ([]model.Book, error) {
	if title == "" && author == "" {
		return nil, fmt.Errorf("search books: no filters provided")
	}

	var conds []string
	args := []any{}
	if title != "" {
		args = append(args, "%"+title+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if author != "" {
		args = append(args, author)
		conds = append(conds, fmt.Sprintf("author = $%d", len(args)))
	}

	query := `SELECT id, title, author, created_at FROM books WHERE ` +
		strings.Join(conds, " AND ") + ` ORDER BY id`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

// MarkRead records that a user finished a book. Marking twice is a no-op.
func (s *BookService) MarkRead(ctx context.Context, userID, bookID string) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO has_read (user_id, book_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, book_id) DO NOTHING`,
		userID, bookID,
	)
	if err != nil {
		return fmt.Errorf("mark book read: %w", err)
	}
	return nil
}

// ListRead returns the books a user has finished.
func (s *BookService) ListRead(ctx context.Context, userID string) ([]model.Book, error) {
	rows, err := s.db.Query(ctx,
		`SELECT b.id, b.title, b.author, b.created_at
		 FROM books b JOIN has_read hr ON hr.book_id = b.id
		 WHERE hr.user_id = $1
		 ORDER BY hr.read_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list read books: %w", err)
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return books, nil
}

package model

import "time"

type Book struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Author    *string   `json:"author,omitempty" db:"author"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HasRead records that a user finished a book.
type HasRead struct {
	UserID string    `json:"user_id" db:"user_id"`
	BookID string    `json:"book_id" db:"book_id"`
	ReadAt time.Time `json:"read_at" db:"read_at"`
}

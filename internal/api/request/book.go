package request

// CreateBook holds the request body for adding a book to the catalog.
type CreateBook struct {
	Title  string  `json:"title" validate:"required,min=1,max=512"`
	Author *string `json:"author" validate:"omitempty,min=1,max=255"`
}

type MarkBookRead struct {
	BookID string `json:"book_id" validate:"required"`
}

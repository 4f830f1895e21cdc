package books

import "github.com/google/uuid"

type ListBooksQuery struct {
	Limit     int     `query:"limit" json:"limit,omitempty" default:"100" validate:"min=1,max=100"`
	Offset    int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
	Genre     *string `query:"genre" json:"genre,omitempty" mod:"trim" validate:"omitempty,max=100"`
	Author    *string `query:"author" json:"author,omitempty" mod:"trim" validate:"omitempty,max=100"`
	Condition *string `query:"condition" json:"condition,omitempty" mod:"lcase" validate:"omitempty,condition"`
}

type CreateBookPayload struct {
	Name        string `json:"name" mod:"trim" validate:"required,max=200"`
	Description string `json:"description" mod:"trim" validate:"max=2000"`
	Condition   string `json:"condition" mod:"lcase" default:"new" validate:"condition"`
	PageCount   int    `json:"page_count" validate:"min=0"`
	AuthorID    int    `json:"author_id" validate:"required,min=1"`
	GenreID     int    `json:"genre_id" validate:"required,min=1"`
	// OwnerID is accepted for compatibility and ignored. The caller always
	// owns the books they create.
	OwnerID *uuid.UUID `json:"owner_id,omitempty"`
}

type UpdateBookPayload struct {
	Name        *string `json:"name,omitempty" mod:"trim" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty" mod:"trim" validate:"omitempty,max=2000"`
	Condition   *string `json:"condition,omitempty" mod:"lcase" validate:"omitempty,condition"`
	PageCount   *int    `json:"page_count,omitempty" validate:"omitempty,min=0"`
	AuthorID    *int    `json:"author_id,omitempty" validate:"omitempty,min=1"`
	GenreID     *int    `json:"genre_id,omitempty" validate:"omitempty,min=1"`
}

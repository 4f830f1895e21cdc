package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	BookConditionNew     = "new"
	BookConditionUsed    = "used"
	BookConditionDamaged = "damaged"
)

// BookConditions lists every accepted condition value.
var BookConditions = []string{BookConditionNew, BookConditionUsed, BookConditionDamaged}

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`
	Timestamps

	ID          int       `bun:",pk,autoincrement" json:"id"`
	Name        string    `bun:",nullzero" json:"name"`
	Description string    `json:"description"`
	Condition   string    `bun:",nullzero" json:"condition"`
	PageCount   int       `json:"page_count"`
	OwnerID     uuid.UUID `json:"owner_id"`
	AuthorID    int       `bun:",nullzero" json:"author_id"`
	GenreID     int       `bun:",nullzero" json:"genre_id"`

	// Relations
	Author  *Author         `bun:"rel:belongs-to,join:author_id=id" json:"author,omitempty"`
	Genre   *Genre          `bun:"rel:belongs-to,join:genre_id=id" json:"genre,omitempty"`
	Pickups []*BookLocation `bun:"rel:has-many,join:id=book_id" json:"pickup_locations,omitempty"`
}

func (*Book) Resource() string { return "Book" }

package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	RequestStatusIdle     = "idle"
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

// BookRequest is a user's request to borrow a book. At most one request per
// book is ever accepted.
type BookRequest struct {
	bun.BaseModel `bun:"table:book_requests,alias:br"`
	Timestamps

	ID          int       `bun:",pk,autoincrement" json:"id"`
	BookID      int       `bun:",nullzero" json:"book_id"`
	RequesterID uuid.UUID `json:"requester_id"`
	Status      string    `bun:",nullzero" json:"status"`

	Book *Book `bun:"rel:belongs-to,join:book_id=id" json:"book,omitempty"`
}

func (*BookRequest) Resource() string { return "Book request" }

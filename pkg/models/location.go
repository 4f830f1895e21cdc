package models

import "github.com/uptrace/bun"

// Location is a place where a book can be handed over.
type Location struct {
	bun.BaseModel `bun:"table:locations,alias:l"`
	Timestamps

	ID      int    `bun:",pk,autoincrement" json:"id"`
	Name    string `bun:",nullzero" json:"name"`
	Address string `json:"address"`
}

func (*Location) Resource() string { return "Location" }

// BookLocation links a book to a location where its owner is willing to hand
// it over. A (book, location) pair is unique.
type BookLocation struct {
	bun.BaseModel `bun:"table:book_locations,alias:bl"`
	Timestamps

	ID         int       `bun:",pk,autoincrement" json:"id"`
	BookID     int       `bun:",nullzero" json:"book_id"`
	LocationID int       `bun:",nullzero" json:"location_id"`
	Location   *Location `bun:"rel:belongs-to,join:location_id=id" json:"location,omitempty"`
}

func (*BookLocation) Resource() string { return "Pickup location" }

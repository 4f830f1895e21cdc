package models

import "github.com/uptrace/bun"

type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`
	Timestamps

	ID       int    `bun:",pk,autoincrement" json:"id"`
	FullName string `bun:",nullzero" json:"full_name"`
}

func (*Author) Resource() string { return "Author" }

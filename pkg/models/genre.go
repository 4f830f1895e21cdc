package models

import "github.com/uptrace/bun"

type Genre struct {
	bun.BaseModel `bun:"table:genres,alias:g"`
	Timestamps

	ID   int    `bun:",pk,autoincrement" json:"id"`
	Name string `bun:",nullzero" json:"name"`
}

func (*Genre) Resource() string { return "Genre" }

package models

import (
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`
	Timestamps

	ID             uuid.UUID `bun:",pk" json:"id"`
	Email          string    `bun:",nullzero" json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash
	IsActive       bool      `json:"is_active"`
	IsSuperuser    bool      `json:"is_superuser"`
	IsVerified     bool      `json:"is_verified"`
}

func (*User) Resource() string { return "User" }

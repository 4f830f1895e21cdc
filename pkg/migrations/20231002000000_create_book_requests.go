package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE book_requests (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				book_id INTEGER REFERENCES books (id) ON DELETE CASCADE NOT NULL,
				requester_id TEXT REFERENCES users (id) NOT NULL,
				status TEXT NOT NULL
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_book_requests_book_id_requester_id ON book_requests (book_id, requester_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`CREATE INDEX ix_book_requests_requester_id ON book_requests (requester_id)`)
		if err != nil {
			return errors.WithStack(err)
		}
		// A book can be lent to at most one requester.
		_, err = db.Exec(`CREATE UNIQUE INDEX ux_book_requests_book_id_accepted ON book_requests (book_id) WHERE status = 'accepted'`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec("DROP TABLE IF EXISTS book_requests")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}

package seed

import (
	"context"
	"testing"

	"github.com/bookswap/bookswap/internal/testgen"
	"github.com/bookswap/bookswap/pkg/auth"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	stale := testgen.CreateUser(t, db, testgen.UserOptions{Email: "stale@example.com"})
	testgen.CreateBook(t, db, stale, testgen.BookOptions{})

	result, err := Run(ctx, db, Options{})
	require.NoError(t, err)
	assert.Equal(t, &Result{Authors: 2, Genres: 2, Users: 3}, result)

	var authors []*models.Author
	require.NoError(t, db.NewSelect().Model(&authors).Order("a.id ASC").Scan(ctx))
	require.Len(t, authors, 2)
	assert.Equal(t, "J. K. Rowling", authors[0].FullName)
	assert.Equal(t, "J. R. R. Tolkien", authors[1].FullName)

	books, err := db.NewSelect().Model((*models.Book)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, books)

	admin := &models.User{}
	require.NoError(t, db.NewSelect().Model(admin).Where("u.email = ?", "admin@gmail.com").Scan(ctx))
	assert.True(t, admin.IsSuperuser)
	assert.True(t, admin.IsVerified)
	assert.True(t, auth.CheckPassword("admin", admin.HashedPassword))

	users, err := db.NewSelect().Model((*models.User)(nil)).Where("u.is_superuser = ?", false).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, users)
}

func TestRun_KeepExisting(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	testgen.CreateGenre(t, db, "Fantasy")

	_, err := Run(ctx, db, Options{KeepExisting: true})
	require.Error(t, err)

	genres, err := db.NewSelect().Model((*models.Genre)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, genres)
}

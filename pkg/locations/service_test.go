package locations

import (
	"context"
	"testing"

	"github.com/bookswap/bookswap/internal/testgen"
	"github.com/bookswap/bookswap/pkg/errcodes"
	"github.com/bookswap/bookswap/pkg/models"
	"github.com/robinjoseph08/golib/pointerutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLocation_Conflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(testgen.NewDB(t))

	require.NoError(t, svc.CreateLocation(ctx, &models.Location{Name: "Central Library"}))
	err := svc.CreateLocation(ctx, &models.Location{Name: "Central Library"})
	assert.ErrorIs(t, err, errcodes.Conflict("Location"))
}

func TestRetrieveLocation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	svc := NewService(db)
	library := testgen.CreateLocation(t, db, "Central Library")

	location, err := svc.RetrieveLocation(ctx, RetrieveLocationOptions{ID: &library.ID})
	require.NoError(t, err)
	assert.Equal(t, "Central Library", location.Name)

	location, err = svc.RetrieveLocation(ctx, RetrieveLocationOptions{Name: pointerutil.String("Central Library")})
	require.NoError(t, err)
	assert.Equal(t, library.ID, location.ID)

	_, err = svc.RetrieveLocation(ctx, RetrieveLocationOptions{Name: pointerutil.String("Nowhere")})
	assert.ErrorIs(t, err, errcodes.NotFound("Location"))
}

func TestUpdateLocation_Conflict(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	svc := NewService(db)
	testgen.CreateLocation(t, db, "Central Library")
	cafe := testgen.CreateLocation(t, db, "Old Town Cafe")

	cafe.Name = "Central Library"
	err := svc.UpdateLocation(ctx, cafe, UpdateLocationOptions{Columns: []string{"name"}})
	assert.ErrorIs(t, err, errcodes.Conflict("Location"))
}

func TestDeleteLocation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := testgen.NewDB(t)
	svc := NewService(db)

	unused := testgen.CreateLocation(t, db, "Harbour Kiosk")
	removed, err := svc.DeleteLocation(ctx, unused.ID)
	require.NoError(t, err)
	assert.Equal(t, "Harbour Kiosk", removed.Name)

	_, err = svc.DeleteLocation(ctx, unused.ID)
	assert.ErrorIs(t, err, errcodes.NotFound("Location"))

	owner := testgen.CreateUser(t, db, testgen.UserOptions{})
	book := testgen.CreateBook(t, db, owner, testgen.BookOptions{})
	library := testgen.CreateLocation(t, db, "Central Library")
	testgen.CreatePickup(t, db, book, library)
	_, err = svc.DeleteLocation(ctx, library.ID)
	assert.ErrorIs(t, err, errcodes.InUse("Location"))
}

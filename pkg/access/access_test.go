package access

import (
	"testing"

	"github.com/bookswap/bookswap/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsOwner(t *testing.T) {
	t.Parallel()

	owner := &models.User{ID: uuid.New(), IsActive: true}
	other := &models.User{ID: uuid.New(), IsActive: true}
	book := &models.Book{ID: 1, OwnerID: owner.ID}

	assert.True(t, IsOwner(owner, book))
	assert.False(t, IsOwner(other, book))
	assert.False(t, IsOwner(nil, book))
	assert.False(t, IsOwner(owner, nil))
}

func TestIsOwner_SuperuserIsNotOwner(t *testing.T) {
	t.Parallel()

	admin := &models.User{ID: uuid.New(), IsActive: true, IsSuperuser: true}
	book := &models.Book{ID: 1, OwnerID: uuid.New()}

	assert.False(t, IsOwner(admin, book))
	assert.False(t, CanViewRequests(admin, book))
	assert.True(t, CanManagePickups(admin, book))
}

func TestIsPrivileged(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPrivileged(&models.User{IsActive: true, IsSuperuser: true}))
	assert.False(t, IsPrivileged(&models.User{IsActive: false, IsSuperuser: true}))
	assert.False(t, IsPrivileged(&models.User{IsActive: true}))
	assert.False(t, IsPrivileged(nil))
}

func TestCanManagePickups(t *testing.T) {
	t.Parallel()

	owner := &models.User{ID: uuid.New(), IsActive: true}
	book := &models.Book{ID: 1, OwnerID: owner.ID}

	assert.True(t, CanManagePickups(owner, book))
	assert.False(t, CanManagePickups(&models.User{ID: uuid.New(), IsActive: true}, book))
}

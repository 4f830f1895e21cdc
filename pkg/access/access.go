// Package access holds the ownership and privilege checks that guard
// mutations. They are pure functions of the caller and the target.
package access

import "github.com/bookswap/bookswap/pkg/models"

// IsOwner reports whether caller owns book.
func IsOwner(caller *models.User, book *models.Book) bool {
	if caller == nil || book == nil {
		return false
	}
	return book.OwnerID == caller.ID
}

// IsPrivileged reports whether caller may bypass ownership checks.
func IsPrivileged(caller *models.User) bool {
	return caller != nil && caller.IsActive && caller.IsSuperuser
}

// CanManagePickups reports whether caller may attach pickup locations to book.
func CanManagePickups(caller *models.User, book *models.Book) bool {
	return IsOwner(caller, book) || IsPrivileged(caller)
}

// CanViewRequests reports whether caller may see the requests made for book.
func CanViewRequests(caller *models.User, book *models.Book) bool {
	return IsOwner(caller, book)
}

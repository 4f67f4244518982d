// Package service implements the application services of the market shop:
// account registration and login, the catalog, favorites and avatar uploads.
// Services are stateless and operate on the shared database handle.
package service

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials is deliberately generic: it does not reveal
	// whether the username exists or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrDuplicateUser reports that the username or email is already taken.
	ErrDuplicateUser = errors.New("username or email already in use")

	// ErrNoFile reports an upload request without a file.
	ErrNoFile = errors.New("no file was selected")

	// ErrUnsupportedFileType reports an avatar upload with an extension
	// outside the allowed set.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrStorage reports a failed write to the upload folder.
	ErrStorage = errors.New("failed to store file")
)

// ValidationError carries the i18n message keys of all failed form
// constraints so the page can list them inline.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// isUniqueViolation reports whether err is the store's uniqueness
// constraint error. SQLite has no typed error for this through GORM, so the
// message is matched.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package uploads

import (
	"context"
	"errors"
)

// ErrNotFound covers both a missing row and a row owned by another user.
// The two cases are deliberately indistinguishable to callers.
var ErrNotFound = errors.New("menu upload not found")

// Repository defines the persistence contract for menu uploads. Every
// read and mutation is keyed by (id, user id) together.
type Repository interface {
	// Save inserts the upload and fills ID and CreatedAt.
	Save(ctx context.Context, upload *MenuUpload) error

	// List returns the user's uploads newest first. A limit <= 0 means
	// no truncation.
	List(ctx context.Context, userID, limit int) ([]MenuUpload, error)

	Get(ctx context.Context, userID, id int) (*MenuUpload, error)
	Rename(ctx context.Context, userID, id int, name string) error
	Delete(ctx context.Context, userID, id int) error
}

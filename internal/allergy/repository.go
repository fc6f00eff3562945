package allergy

import (
	"context"
	"errors"
)

var (
	ErrAllergenNotFound = errors.New("allergen not found")
	ErrNotFound         = errors.New("user allergy not found")
)

type Repository interface {
	// ListByUser returns the user's allergies ordered by severity,
	// most severe first.
	ListByUser(ctx context.Context, userID int) ([]UserAllergy, error)

	FindAllergenByName(ctx context.Context, name string) (*Allergen, error)
	FindUserAllergy(ctx context.Context, userID, allergenID int) (*UserAllergy, error)
	FindByID(ctx context.Context, id int) (*UserAllergy, error)

	Create(ctx context.Context, ua *UserAllergy) error
	UpdateSeverity(ctx context.Context, id, severity int) error
	Delete(ctx context.Context, id int) error
}

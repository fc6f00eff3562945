package allergy

import (
	"context"
	"errors"

	"halo-backend/internal/analysis"
)

var (
	ErrInvalidAllergen = errors.New("invalid allergen_name")
	ErrInvalidSeverity = errors.New("severity must be between 1 and 3; 1 for mild and 3 for severe")
	ErrAlreadyExists   = errors.New("user allergy already exists")
	ErrNotOwner        = errors.New("current user does not own the given user allergy")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID int) ([]UserAllergy, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add records a new allergy. The name must resolve to a vocabulary
// label; severity must be in 1..3; duplicates are rejected.
func (s *Service) Add(ctx context.Context, userID int, allergenName string, severity int) (*UserAllergy, error) {
	label, ok := analysis.CanonicalLabel(allergenName)
	if !ok {
		return nil, ErrInvalidAllergen
	}
	if severity < 1 || severity > 3 {
		return nil, ErrInvalidSeverity
	}

	allergen, err := s.repo.FindAllergenByName(ctx, label)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindUserAllergy(ctx, userID, allergen.ID); err == nil {
		return nil, ErrAlreadyExists
	}

	ua := &UserAllergy{
		UserID:       userID,
		AllergenID:   allergen.ID,
		Severity:     severity,
		AllergenName: allergen.Name,
	}
	if err := s.repo.Create(ctx, ua); err != nil {
		return nil, err
	}
	return ua, nil
}

func (s *Service) UpdateSeverity(ctx context.Context, userID, userAllergyID, severity int) (*UserAllergy, error) {
	if severity < 1 || severity > 3 {
		return nil, ErrInvalidSeverity
	}

	ua, err := s.repo.FindByID(ctx, userAllergyID)
	if err != nil {
		return nil, err
	}
	if ua.UserID != userID {
		return nil, ErrNotOwner
	}

	if err := s.repo.UpdateSeverity(ctx, userAllergyID, severity); err != nil {
		return nil, err
	}
	ua.Severity = severity
	return ua, nil
}

func (s *Service) Delete(ctx context.Context, userID, userAllergyID int) error {
	ua, err := s.repo.FindByID(ctx, userAllergyID)
	if err != nil {
		return err
	}
	if ua.UserID != userID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, userAllergyID)
}

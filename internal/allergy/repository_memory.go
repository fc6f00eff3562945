package allergy

import (
	"context"
	"sort"

	"halo-backend/internal/analysis"
)

// InMemoryRepository backs service tests. It is pre-seeded with the
// allergen vocabulary like the postgres schema is at startup.
type InMemoryRepository struct {
	allergens map[int]*Allergen
	byName    map[string]int
	allergies map[int]*UserAllergy
	nextID    int
}

func NewInMemoryRepository() *InMemoryRepository {
	r := &InMemoryRepository{
		allergens: make(map[int]*Allergen),
		byName:    make(map[string]int),
		allergies: make(map[int]*UserAllergy),
		nextID:    1,
	}
	for i, name := range analysis.AllergenVocabulary {
		id := i + 1
		r.allergens[id] = &Allergen{ID: id, Name: name}
		r.byName[name] = id
	}
	return r
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID int) ([]UserAllergy, error) {
	var result []UserAllergy
	for _, ua := range r.allergies {
		if ua.UserID == userID {
			result = append(result, *ua)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Severity != result[j].Severity {
			return result[i].Severity > result[j].Severity
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *InMemoryRepository) FindAllergenByName(ctx context.Context, name string) (*Allergen, error) {
	id, ok := r.byName[name]
	if !ok {
		return nil, ErrAllergenNotFound
	}
	copied := *r.allergens[id]
	return &copied, nil
}

func (r *InMemoryRepository) FindUserAllergy(ctx context.Context, userID, allergenID int) (*UserAllergy, error) {
	for _, ua := range r.allergies {
		if ua.UserID == userID && ua.AllergenID == allergenID {
			copied := *ua
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id int) (*UserAllergy, error) {
	ua, ok := r.allergies[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *ua
	return &copied, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, ua *UserAllergy) error {
	ua.ID = r.nextID
	r.nextID++
	if a, ok := r.allergens[ua.AllergenID]; ok {
		ua.AllergenName = a.Name
	}
	stored := *ua
	r.allergies[ua.ID] = &stored
	return nil
}

func (r *InMemoryRepository) UpdateSeverity(ctx context.Context, id, severity int) error {
	ua, ok := r.allergies[id]
	if !ok {
		return ErrNotFound
	}
	ua.Severity = severity
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int) error {
	if _, ok := r.allergies[id]; !ok {
		return ErrNotFound
	}
	delete(r.allergies, id)
	return nil
}

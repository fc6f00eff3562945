package allergy

// Allergen is one row of the vocabulary-seeded lookup table.
type Allergen struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UserAllergy links a user to an allergen with a severity of 1 (mild)
// to 3 (severe).
type UserAllergy struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id"`
	AllergenID   int    `json:"allergen_id"`
	Severity     int    `json:"severity"`
	AllergenName string `json:"allergen_name"`
}

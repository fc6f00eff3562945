package analysis

import "strings"

// AllergenVocabulary is the fixed set of canonical allergen labels.
// It seeds the allergens table at startup and is embedded verbatim in
// every prompt so the model cannot invent labels outside it.
var AllergenVocabulary = []string{
	"Milk",
	"Eggs",
	"Fish",
	"Shellfish",
	"Tree Nuts",
	"Peanuts",
	"Wheat",
	"Soybeans",
	"Sesame",
}

const (
	// LabelNone marks an item with no common allergens.
	LabelNone = "None"
	// LabelUnknown marks an item whose allergens cannot be determined
	// from its name. Forces confidence_score to 0.
	LabelUnknown = "Unknown"
	// ErrorSentinel is the value the model puts in every field of a
	// single-element response when it cannot read the input.
	ErrorSentinel = "__ERROR__"
)

// CanonicalLabel resolves a user-supplied allergen name to its canonical
// vocabulary form, case-insensitively.
func CanonicalLabel(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, label := range AllergenVocabulary {
		if strings.EqualFold(label, name) {
			return label, true
		}
	}
	return "", false
}

package analysis

// MenuItem is one extracted menu entry. Built only from validated model
// output and never mutated afterwards.
type MenuItem struct {
	ItemName        string   `json:"item_name"`
	CommonAllergens []string `json:"common_allergens"`
	ConfidenceScore int      `json:"confidence_score"`
}

// HasUnknownAllergen reports whether any allergen label is "Unknown".
func (m MenuItem) HasUnknownAllergen() bool {
	for _, a := range m.CommonAllergens {
		if a == LabelUnknown {
			return true
		}
	}
	return false
}

// OutcomeState tags the three possible analysis results. Callers must
// switch on the state before touching Items.
type OutcomeState int

const (
	// OutcomeEmpty means the model returned no usable text.
	OutcomeEmpty OutcomeState = iota
	// OutcomeModelError means the model returned the sentinel-error
	// response (unreadable image / implausible item list).
	OutcomeModelError
	// OutcomeSuccess means Items holds a non-empty ordered result.
	OutcomeSuccess
)

// Outcome is the tagged result of one analysis call. Items is populated
// only when State is OutcomeSuccess and preserves the model's emission
// order.
type Outcome struct {
	State OutcomeState
	Items []MenuItem
}

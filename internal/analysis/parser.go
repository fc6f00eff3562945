package analysis

import (
	"encoding/json"
	"errors"
	"strings"
)

// classifyResponse maps raw model output onto exactly one Outcome state.
// Transport and shape problems are returned as errors; domain-level
// failure is the sentinel outcome, never an error.
func classifyResponse(raw string) (Outcome, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Outcome{State: OutcomeEmpty}, nil
	}

	// The sentinel response holds "__ERROR__" in every property, so it
	// cannot satisfy the strict result schema. Peek at the first item
	// name before validating.
	var peek []map[string]any
	if err := json.Unmarshal([]byte(raw), &peek); err != nil {
		return Outcome{}, errors.New("invalid model JSON output")
	}
	if len(peek) == 0 {
		return Outcome{State: OutcomeEmpty}, nil
	}
	if name, ok := peek[0]["item_name"].(string); ok && name == ErrorSentinel {
		return Outcome{State: OutcomeModelError}, nil
	}

	if err := validateResultJSON([]byte(raw)); err != nil {
		return Outcome{}, err
	}

	var items []MenuItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return Outcome{}, errors.New("invalid model JSON output")
	}

	// The prompt demands confidence 0 for Unknown allergens, but the
	// structured-output contract cannot express that coupling. Enforce
	// it here at construction time instead of trusting the model.
	for i := range items {
		if items[i].HasUnknownAllergen() {
			items[i].ConfidenceScore = 0
		}
	}

	return Outcome{State: OutcomeSuccess, Items: items}, nil
}

package analysis

import (
	"fmt"
	"strings"
)

// Prompts are pure functions of the fixed vocabulary (and, for the text
// mode, the caller's item list). They are built once per request; nothing
// here is mutated after init.

const allergenRules = `For each item, identify allergens commonly found in that food item ` +
	`(or something similar), choosing strictly from this list of allergens: %s. ` +
	`If an item does not have any common allergens, its common_allergens property ` +
	`should hold a single string "None". If the allergens cannot be determined from ` +
	`the item name, its common_allergens property should hold a single string "Unknown". ` +
	`Assign each item a confidence_score from 1 to 10 for how confident you are in ` +
	`the identified allergens. Whenever common_allergens holds "Unknown", the ` +
	`confidence_score must be exactly 0.`

// BuildImagePrompt returns the instruction text for image-based extraction.
func BuildImagePrompt() string {
	var b strings.Builder
	b.WriteString("Please itemize the food items on the image of a menu. ")
	fmt.Fprintf(&b, allergenRules, strings.Join(AllergenVocabulary, ", "))
	b.WriteString(` If the menu is blurry or unreadable where it is difficult to ` +
		`accurately itemize 90% of the menu items, then return a JSON array with a ` +
		`single object holding "__ERROR__" in every property.`)
	return b.String()
}

// BuildTextPrompt returns the instruction text for a caller-supplied list
// of item names. The items are joined with commas in the caller's order.
func BuildTextPrompt(items []string) string {
	var b strings.Builder
	b.WriteString("The following is a comma-separated list of menu items: ")
	b.WriteString(strings.Join(items, ", "))
	b.WriteString(". ")
	fmt.Fprintf(&b, allergenRules, strings.Join(AllergenVocabulary, ", "))
	b.WriteString(` If an entry is not plausibly a food item, give that entry a ` +
		`single "Unknown" allergen with confidence_score 0 instead of failing the ` +
		`whole list. If more than 10% of the entries are not plausibly food items, ` +
		`then return a JSON array with a single object holding "__ERROR__" in every ` +
		`property.`)
	return b.String()
}

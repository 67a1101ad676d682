/* choices.go
 * Contains the enumerated form options and the logic used to resolve free text into one of them
 */

package flow

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Choice is one option of an enumerated form field
type Choice struct {
	Value string
	Label string
}

var GraduationYears = []Choice{
	{Value: "2025", Label: "2025"},
	{Value: "2026", Label: "2026"},
	{Value: "2027", Label: "2027"},
	{Value: "2028", Label: "2028"},
	{Value: "2029", Label: "2029"},
	{Value: "graduated", Label: "Already graduated"},
}

var ExperienceLevels = []Choice{
	{Value: "none", Label: "No experience - excited to learn!"},
	{Value: "beginner", Label: "Beginner - some exposure"},
	{Value: "intermediate", Label: "Intermediate - built projects before"},
	{Value: "advanced", Label: "Advanced - extensive experience"},
}

// ResolveChoice maps user input onto a choice value.
// Preconditions: Receives the raw input and the list of valid choices
// Postconditions: Returns the matching value and true. Empty input resolves to "" and true. Input is accepted when it
// equals a value or label, equals the short form of a label (the text before " - "), or fuzzy matches exactly one
// value. Anything else, including input that fuzzy matches several values, returns false.
func ResolveChoice(input string, choices []Choice) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", true
	}

	values := make([]string, 0, len(choices))
	for _, c := range choices {
		short, _, _ := strings.Cut(c.Label, " - ")
		if strings.EqualFold(input, c.Value) || strings.EqualFold(input, c.Label) ||
			strings.EqualFold(input, strings.TrimSpace(short)) {
			return c.Value, true
		}
		values = append(values, c.Value)
	}

	// Labels are free text and match almost anything, so only values are searched
	ranks := fuzzy.RankFindNormalizedFold(input, values)
	if len(ranks) != 1 {
		return "", false
	}
	return choices[ranks[0].OriginalIndex].Value, true
}

func resolveField(name string, input string, choices []Choice) (string, error) {
	value, ok := ResolveChoice(input, choices)
	if !ok {
		return "", fmt.Errorf("%w: %s %q", ErrInvalidOption, name, input)
	}
	return value, nil
}

func invalidOptionMessage(field string) string {
	return fmt.Sprintf("Please choose a valid %s.", field)
}

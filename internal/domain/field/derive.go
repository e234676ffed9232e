package field

import (
	"regexp"
	"strings"
	"unicode"
)

// Field names the engine derives or validates. Callers address fields by
// these names in error maps and patch payloads.
const (
	Name       = "name"
	Gender     = "gender"
	Technology = "technology"
	Email      = "email"
	Phone      = "phone"
	EndClient  = "endClient"
	JobTitle   = "jobTitle"
)

var (
	emailRe      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	technologyRe = regexp.MustCompile(`^[a-zA-Z0-9\s/.+#-]+$`)
	companyRe    = regexp.MustCompile(`^[a-zA-Z0-9\s&.,'-]+$`)
)

// CapitalizeWords title-cases each space-delimited token: first rune
// upper, remainder lower. Applied to name, technology, endClient and
// jobTitle as the operator types.
func CapitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Capitalized reports whether name applies title-casing on edit.
func Capitalized(name string) bool {
	switch name {
	case Name, Technology, EndClient, JobTitle:
		return true
	default:
		return false
	}
}

// Validate checks a single field value and returns an error message, or
// "" when the value is acceptable. Unknown fields always pass.
func Validate(name, value string) string {
	switch name {
	case Email:
		if !emailRe.MatchString(value) {
			return "Please enter a valid email address"
		}
	case Technology:
		if !technologyRe.MatchString(value) {
			return "Technology can only contain letters, numbers, spaces, and basic punctuation"
		}
	case EndClient:
		if value != "" && !companyRe.MatchString(value) {
			return "Company name can only contain letters, numbers, spaces, and basic punctuation"
		}
	case JobTitle:
		if value != "" && !companyRe.MatchString(value) {
			return "Job title can only contain letters, numbers, spaces, and basic punctuation"
		}
	}
	return ""
}

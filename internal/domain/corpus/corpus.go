// Package corpus builds the autocomplete suggestion sets from the record
// store. The corpus is pure derived state: rebuilt on every store
// mutation, never persisted on its own.
package corpus

import (
	"sort"
	"strings"

	"github.com/candidesk/candidesk/internal/domain/model"
)

// Corpus holds one deduplicated, sorted suggestion list per common field.
type Corpus struct {
	Names        []string `json:"names"`
	Genders      []string `json:"genders"`
	Technologies []string `json:"technologies"`
	Emails       []string `json:"emails"`
	Phones       []string `json:"phones"`
}

// Build derives the corpus from the full record list. Blank values are
// skipped; output lists are sorted so repeated builds over the same
// records are identical.
func Build(records []model.Candidate) Corpus {
	names := make(map[string]struct{})
	genders := make(map[string]struct{})
	technologies := make(map[string]struct{})
	emails := make(map[string]struct{})
	phones := make(map[string]struct{})

	for _, c := range records {
		collect(names, c.Name)
		collect(genders, c.Gender)
		collect(technologies, c.Technology)
		collect(emails, c.Email)
		collect(phones, c.Phone)
	}

	return Corpus{
		Names:        sorted(names),
		Genders:      sorted(genders),
		Technologies: sorted(technologies),
		Emails:       sorted(emails),
		Phones:       sorted(phones),
	}
}

// Suggest returns the values for fieldName that contain query,
// case-insensitively. An empty query returns the whole list; an unknown
// field returns nil.
func (c Corpus) Suggest(fieldName, query string) []string {
	var values []string
	switch fieldName {
	case "name":
		values = c.Names
	case "gender":
		values = c.Genders
	case "technology":
		values = c.Technologies
	case "email":
		values = c.Emails
	case "phone":
		values = c.Phones
	default:
		return nil
	}
	if query == "" {
		return values
	}

	needle := strings.ToLower(query)
	var out []string
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), needle) {
			out = append(out, v)
		}
	}
	return out
}

func collect(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

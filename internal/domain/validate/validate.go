// Package validate gates draft submission with field-scoped checks.
package validate

import (
	"github.com/candidesk/candidesk/internal/domain/field"
	"github.com/candidesk/candidesk/internal/domain/model"
)

// Result maps field names to error messages. The map holds only fields
// that actually failed; validation never returns errors as Go errors
// because a failed check is a recoverable, expected outcome.
type Result struct {
	FieldErrors map[string]string
	IsValid     bool
}

// Draft validates d against its variant's rules. Email and technology are
// always checked; endClient only when present and the variant carries a
// client; jobTitle only when present on an interview.
func Draft(d model.Draft) Result {
	errs := make(map[string]string)

	add := func(name, value string) {
		if msg := field.Validate(name, value); msg != "" {
			errs[name] = msg
		}
	}

	add(field.Email, d.Email)
	add(field.Technology, d.Technology)

	if d.EndClient != "" && d.TaskType.HasEndClient() {
		add(field.EndClient, d.EndClient)
	}
	if d.JobTitle != "" && d.TaskType == model.TaskInterview {
		add(field.JobTitle, d.JobTitle)
	}

	return Result{FieldErrors: errs, IsValid: len(errs) == 0}
}

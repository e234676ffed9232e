// Package task defines the five support-task variants: their display
// labels, which conditional fields each one carries, and the derived
// subject line used as the status-reconciliation key.
package task

import "github.com/candidesk/candidesk/internal/domain/model"

// Label returns the human-readable name of a variant.
func Label(t model.TaskType) string {
	switch t {
	case model.TaskInterview:
		return "Interview Support"
	case model.TaskAssessment:
		return "Assessment Support"
	case model.TaskMock:
		return "Mock Interview"
	case model.TaskResumeUnderstanding:
		return "Resume Understanding"
	case model.TaskResumeReview:
		return "Resume Making"
	default:
		return ""
	}
}

// ResetForType returns d switched to variant t. The five common fields
// survive the switch; every variant-conditional field is reset to its
// empty default. EndClient is kept only when the new variant still has a
// client company, and the expert flag is never the operator's to lose.
func ResetForType(d model.Draft, t model.TaskType) model.Draft {
	endClient := ""
	if t.HasEndClient() {
		endClient = d.EndClient
	}
	return model.Draft{
		TaskType:   t,
		Name:       d.Name,
		Gender:     d.Gender,
		Technology: d.Technology,
		Email:      d.Email,
		Phone:      d.Phone,
		EndClient:  endClient,
		Duration:   model.DefaultDuration,
		Expert:     d.Expert,
	}
}

// SortValue returns the wall-clock string that orders c within its
// timeline bucket. The resume-review bucket orders by creation time, which
// is not a wall-clock field; callers handle that case via SortsByCreation.
func SortValue(c model.Candidate) string {
	switch c.TaskType {
	case model.TaskInterview:
		return c.InterviewDateTime
	case model.TaskAssessment:
		return c.AssessmentDeadline
	case model.TaskMock, model.TaskResumeUnderstanding:
		return c.AvailabilityDateTime
	case model.TaskResumeReview:
		return ""
	default:
		return ""
	}
}

// SortsByCreation reports whether the variant's bucket orders by CreatedAt
// instead of a date field.
func SortsByCreation(t model.TaskType) bool {
	return t == model.TaskResumeReview
}

// Package model contains domain records passed between layers.
package model

import "time"

// TaskType discriminates the five support-task variants. The set is
// closed: switches over it must handle every constant and reject
// anything else.
type TaskType string

const (
	TaskInterview           TaskType = "interview"
	TaskAssessment          TaskType = "assessment"
	TaskMock                TaskType = "mock"
	TaskResumeUnderstanding TaskType = "resumeUnderstanding"
	TaskResumeReview        TaskType = "resumeReview"
)

// AllTaskTypes lists the variants in their fixed presentation order.
// Timeline buckets and filter chips follow this order.
func AllTaskTypes() []TaskType {
	return []TaskType{
		TaskInterview,
		TaskAssessment,
		TaskMock,
		TaskResumeUnderstanding,
		TaskResumeReview,
	}
}

// Valid reports whether t is one of the five known variants.
func (t TaskType) Valid() bool {
	switch t {
	case TaskInterview, TaskAssessment, TaskMock, TaskResumeUnderstanding, TaskResumeReview:
		return true
	default:
		return false
	}
}

// HasEndClient reports whether the variant carries a client company field.
func (t TaskType) HasEndClient() bool {
	switch t {
	case TaskInterview, TaskAssessment, TaskMock:
		return true
	case TaskResumeUnderstanding, TaskResumeReview:
		return false
	default:
		return false
	}
}

// MockMode selects the flavor of a mock interview session.
type MockMode string

const (
	MockEvaluation MockMode = "Evaluation"
	MockTraining   MockMode = "Training"
)

// DefaultDuration is the duration (minutes) a fresh draft starts with.
const DefaultDuration = "60"

// Draft is an in-progress, not-yet-persisted candidate record. It has the
// same shape as Candidate minus identity and timestamps.
type Draft struct {
	TaskType TaskType `json:"taskType"`

	// Common fields, required for every variant.
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Technology string `json:"technology"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`

	// Interview, assessment and mock.
	EndClient string `json:"endClient,omitempty"`
	Duration  string `json:"duration,omitempty"`

	// Interview only.
	JobTitle          string `json:"jobTitle,omitempty"`
	InterviewRound    string `json:"interviewRound,omitempty"`
	InterviewDateTime string `json:"interviewDateTime,omitempty"`

	// Assessment only.
	AssessmentDeadline string `json:"assessmentDeadline,omitempty"`
	ScreeningDone      bool   `json:"screeningDone,omitempty"`

	// Mock and resume understanding.
	AvailabilityDateTime string   `json:"availabilityDateTime,omitempty"`
	MockMode             MockMode `json:"mockMode,omitempty"`

	Remarks string `json:"remarks,omitempty"`

	// Expert is set only by autofill, never by the operator.
	Expert string `json:"expert,omitempty"`
}

// NewDraft returns an empty draft with variant defaults applied.
func NewDraft() Draft {
	return Draft{
		TaskType: TaskInterview,
		Duration: DefaultDuration,
	}
}

// Candidate is a persisted support-task record for one candidate/task
// pairing. Datetime fields hold zone-less wall-clock strings exactly as
// entered ("2006-01-02T15:04:05"); they are never converted.
type Candidate struct {
	ID string `json:"id"`

	Draft

	// Subject is the derived display title, doubling as the correlation
	// key for external status reconciliation. Always recomputed from the
	// current field values before matching or persisting.
	Subject string `json:"subject,omitempty"`

	// Status is free text set only by external reconciliation.
	Status string `json:"status,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

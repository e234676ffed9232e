package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/candidesk/candidesk/internal/adapters/bus"
	"github.com/candidesk/candidesk/internal/domain/field"
	"github.com/candidesk/candidesk/internal/domain/model"
	"github.com/candidesk/candidesk/internal/domain/task"
	"github.com/candidesk/candidesk/internal/domain/validate"
	"github.com/candidesk/candidesk/pkg/logger"
	"github.com/candidesk/candidesk/pkg/metrics"
)

// Draft returns a copy of the draft under edit.
func (s *Service) Draft() model.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

// DraftErrors returns a copy of the live field-error map.
func (s *Service) DraftErrors() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.draftErrors))
	for k, v := range s.draftErrors {
		out[k] = v
	}
	return out
}

// ResetDraft discards the draft and any edit in progress.
func (s *Service) ResetDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetDraftLocked()
}

func (s *Service) resetDraftLocked() {
	s.draft = model.NewDraft()
	s.draftErrors = map[string]string{}
	s.editingID = ""
}

// EditRecord loads an existing record into the draft. Submitting the
// draft will then update the record in place.
func (s *Service) EditRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	s.draft = c.Draft
	s.draftErrors = map[string]string{}
	s.editingID = c.ID
	return nil
}

// CloneRecord pre-fills the draft from an existing record but leaves edit
// mode off, so submitting mints a fresh id.
func (s *Service) CloneRecord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrNotStarted
	}
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	s.draft = c.Draft
	s.draftErrors = map[string]string{}
	s.editingID = ""
	return nil
}

// SetField applies one user edit to the draft, running the field's
// derivation rules (capitalization, phone formatting) and its validator.
// A datetime outside business hours emits a non-blocking warning on the
// bus. The returned string is the field's validation error, "" when fine.
func (s *Service) SetField(ctx context.Context, name, value string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if field.Capitalized(name) {
		value = field.CapitalizeWords(value)
	}
	if name == field.Phone {
		value = field.NormalizePhone(value)
	}

	if err := setDraftField(&s.draft, name, value); err != nil {
		return "", err
	}

	if name == "interviewDateTime" || name == "availabilityDateTime" {
		s.checkBusinessHoursLocked(ctx, value)
	}

	msg := field.Validate(name, value)
	if msg == "" {
		delete(s.draftErrors, name)
	} else {
		s.draftErrors[name] = msg
	}

	if corpusField(name) && s.suggest != nil {
		s.suggest.Query(ctx, name, value)
	}
	return msg, nil
}

// corpusField reports whether edits to the field trigger autocomplete
// lookups.
func corpusField(name string) bool {
	switch name {
	case field.Name, field.Gender, field.Technology, field.Email, field.Phone:
		return true
	default:
		return false
	}
}

// setDraftField routes a value into the draft by its wire name.
func setDraftField(d *model.Draft, name, value string) error {
	switch name {
	case field.Name:
		d.Name = value
	case field.Gender:
		d.Gender = value
	case field.Technology:
		d.Technology = value
	case field.Email:
		d.Email = value
	case field.Phone:
		d.Phone = value
	case field.EndClient:
		d.EndClient = value
	case field.JobTitle:
		d.JobTitle = value
	case "duration":
		d.Duration = value
	case "interviewRound":
		d.InterviewRound = value
	case "interviewDateTime":
		d.InterviewDateTime = value
	case "assessmentDeadline":
		d.AssessmentDeadline = value
	case "availabilityDateTime":
		d.AvailabilityDateTime = value
	case "mockMode":
		switch model.MockMode(value) {
		case model.MockEvaluation, model.MockTraining:
			d.MockMode = model.MockMode(value)
		case "":
			d.MockMode = ""
		default:
			return fmt.Errorf("%w: mockMode %q", ErrInvalidValue, value)
		}
	case "remarks":
		d.Remarks = value
	case "expert":
		d.Expert = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	return nil
}

// checkBusinessHoursLocked emits the scheduling advisory for a wall-clock
// value outside the configured window. Callers hold s.mu.
func (s *Service) checkBusinessHoursLocked(ctx context.Context, value string) {
	t, ok := task.ParseWallClock(value)
	if !ok {
		return
	}
	if field.OutsideWindow(t.Hour(), s.openHour, s.closeHour) {
		s.bus.Publish(ctx, bus.Notification{
			Kind:     bus.ValidationWarning,
			Message:  field.BusinessHoursWarning,
			Severity: bus.SeverityWarning,
		})
	}
}

// SwitchTaskType moves the draft to another variant: the five common
// fields survive, variant-conditional fields reset, and the error map
// clears.
func (s *Service) SwitchTaskType(ctx context.Context, t model.TaskType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: taskType %q", ErrInvalidValue, t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = task.ResetForType(s.draft, t)
	s.draftErrors = map[string]string{}
	return nil
}

// SetScreeningDone records the screening checkbox. Flipping it on derives
// the assessment deadline from today's New York calendar date.
func (s *Service) SetScreeningDone(ctx context.Context, done bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if done {
		s.draft.AssessmentDeadline = field.ComputeDeadline(s.now(), field.DeadlineScreeningDone)
	}
	s.draft.ScreeningDone = done
}

// MarkDeadlineNotMentioned derives the assessment deadline for the given
// category when the client did not state one.
func (s *Service) MarkDeadlineNotMentioned(ctx context.Context, category field.DeadlineCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.AssessmentDeadline = field.ComputeDeadline(s.now(), category)
}

// Submit validates the draft and, when valid, persists it as a candidate
// record. Validation failure blocks the store mutation and keeps the
// draft intact; the failed result travels back to the caller, never as a
// panic or a lost state change.
func (s *Service) Submit(ctx context.Context) (model.Candidate, validate.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return model.Candidate{}, validate.Result{}, ErrNotStarted
	}

	result := validate.Draft(s.draft)
	if !result.IsValid {
		metrics.RecordValidationFailure()
		return model.Candidate{}, result, ErrValidation
	}

	c := model.Candidate{
		ID:    s.editingID,
		Draft: s.draft,
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Subject = task.Subject(c)

	// A rescheduled interview gets its reminders back.
	if s.editingID != "" {
		if prev, err := s.store.Get(ctx, s.editingID); err == nil &&
			prev.InterviewDateTime != c.InterviewDateTime {
			s.rearmReminders(ctx, s.editingID)
		}
	}

	stored, err := s.store.Upsert(ctx, c)
	if err != nil {
		return model.Candidate{}, result, err
	}

	metrics.RecordSubmission(string(stored.TaskType))
	s.logger.Info(ctx, "candidate saved",
		logger.String("id", stored.ID),
		logger.String("taskType", string(stored.TaskType)),
	)

	s.resetDraftLocked()
	s.afterMutation(ctx, stored.ID)
	return stored, result, nil
}

// Delete removes a record and returns it for UI feedback.
func (s *Service) Delete(ctx context.Context, id string) (model.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return model.Candidate{}, ErrNotStarted
	}

	removed, err := s.store.Remove(ctx, id)
	if err != nil {
		return model.Candidate{}, err
	}
	metrics.RecordDeletion()
	s.afterMutation(ctx, id)
	return removed, nil
}

package service

import (
	"context"

	"github.com/candidesk/candidesk/internal/adapters/bus"
	"github.com/candidesk/candidesk/internal/domain/field"
	"github.com/candidesk/candidesk/internal/domain/model"
	"github.com/candidesk/candidesk/internal/domain/task"
	"github.com/candidesk/candidesk/pkg/logger"
	"github.com/candidesk/candidesk/pkg/metrics"
)

// ApplyAutofill merges an OCR patch into the draft. Only fields the patch
// actually carries are written; later patches win over earlier ones for
// the fields they share. Patched values skip per-field validation so a
// bad extraction never blocks the operator mid-edit.
func (s *Service) ApplyAutofill(ctx context.Context, p model.AutofillPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var changed []string
	if p.Name != "" {
		s.draft.Name = field.CapitalizeWords(p.Name)
		changed = append(changed, field.Name)
	}
	if p.Gender != "" {
		s.draft.Gender = p.Gender
		changed = append(changed, field.Gender)
	}
	if p.Technology != "" {
		s.draft.Technology = field.CapitalizeWords(p.Technology)
		changed = append(changed, field.Technology)
	}
	if p.Email != "" {
		s.draft.Email = p.Email
		changed = append(changed, field.Email)
	}
	if p.Phone != "" {
		s.draft.Phone = field.NormalizePhone(p.Phone)
		changed = append(changed, field.Phone)
	}
	if p.Expert != "" {
		s.draft.Expert = p.Expert
		changed = append(changed, "expert")
	}
	if len(changed) == 0 {
		return nil
	}

	metrics.RecordAutofillApplied()
	s.bus.Publish(ctx, bus.Notification{
		Kind:     bus.DraftPatched,
		Message:  "draft updated from screenshot",
		Severity: bus.SeverityInfo,
		Fields:   changed,
	})
	s.logger.Debug(ctx, "autofill patch applied", logger.Int("fields", len(changed)))
	return nil
}

// ApplyStatus resolves a status update against the store by recomputing
// each record's subject line and comparing it, byte for byte, with the
// incoming one. Subjects are not unique, so the status goes to every
// matching record. A matched record with an unchanged status is left
// alone entirely, so replayed updates do not disturb updatedAt. An
// unmatched update is dropped after counting it; the record may have
// been deleted or renamed since the message was produced.
func (s *Service) ApplyStatus(ctx context.Context, u model.StatusUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched, lastApplied string
	for _, c := range s.store.List(ctx) {
		if task.Subject(c) != u.Subject {
			continue
		}
		matched = c.ID
		if c.Status == u.Status {
			s.logger.Debug(ctx, "status update replayed, no change",
				logger.String("id", c.ID),
				logger.String("status", u.Status),
			)
			continue
		}

		c.Status = u.Status
		if _, err := s.store.Upsert(ctx, c); err != nil {
			return err
		}
		metrics.RecordStatusApplied()
		lastApplied = c.ID
		s.logger.Info(ctx, "status applied",
			logger.String("id", c.ID),
			logger.String("status", u.Status),
		)
	}

	if matched == "" {
		metrics.RecordStatusUnmatched()
		s.logger.Warn(ctx, "status update matched no record",
			logger.String("subject", u.Subject),
		)
		return nil
	}
	if lastApplied != "" {
		s.afterMutation(ctx, lastApplied)
	}
	return nil
}

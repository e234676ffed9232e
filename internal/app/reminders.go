package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/candidesk/candidesk/internal/adapters/bus"
	"github.com/candidesk/candidesk/internal/domain/field"
	"github.com/candidesk/candidesk/internal/domain/model"
	"github.com/candidesk/candidesk/internal/domain/task"
	"github.com/candidesk/candidesk/pkg/logger"
	"github.com/candidesk/candidesk/pkg/metrics"
)

const (
	// longReminderLead fires for interviews still awaiting action.
	longReminderLead = 45
	// shortReminderLead fires for every interview regardless of status.
	shortReminderLead = 30
)

// runReminders scans interview records on a fixed cadence and raises
// lead-time reminders on the bus. Each record fires at most once per
// lead; the tracker remembers what already rang.
func (s *Service) runReminders(ctx context.Context) {
	ticker := time.NewTicker(s.reminderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.checkReminders(ctx, s.now())
		}
	}
}

func (s *Service) checkReminders(ctx context.Context, now time.Time) {
	s.mu.RLock()
	records := s.store.List(ctx)
	s.mu.RUnlock()

	wall := field.NewYorkWallClock(now)
	for _, c := range records {
		if c.TaskType != model.TaskInterview || c.InterviewDateTime == "" {
			continue
		}
		at, ok := task.ParseWallClock(c.InterviewDateTime)
		if !ok {
			continue
		}

		lead := int(at.Sub(wall).Minutes())
		switch lead {
		case longReminderLead:
			if !pendingStatus(c.Status) {
				continue
			}
			s.fireReminder(ctx, c, longReminderLead, bus.SeverityWarning)
		case shortReminderLead:
			s.fireReminder(ctx, c, shortReminderLead, bus.SeverityInfo)
		}
	}
}

// pendingStatus reports whether a record still awaits action: no status
// at all, or an explicit pending one.
func pendingStatus(status string) bool {
	return status == "" || strings.EqualFold(status, "pending")
}

func reminderKey(id string, lead int) string {
	return id + "-" + strconv.Itoa(lead)
}

// rearmReminders drops a record's fired keys so a rescheduled interview
// alerts again at both lead times.
func (s *Service) rearmReminders(ctx context.Context, id string) {
	for _, lead := range []int{longReminderLead, shortReminderLead} {
		s.reminders.Forget(ctx, reminderKey(id, lead))
	}
}

func (s *Service) fireReminder(ctx context.Context, c model.Candidate, lead int, sev bus.Severity) {
	key := reminderKey(c.ID, lead)
	if s.reminders.SeenAndRecord(ctx, key) {
		return
	}

	metrics.RecordReminderFired(strconv.Itoa(lead))
	s.bus.Publish(ctx, bus.Notification{
		Kind:     bus.Reminder,
		Message:  "interview for " + c.Name + " starts in " + strconv.Itoa(lead) + " minutes",
		Severity: sev,
		RecordID: c.ID,
	})
	s.logger.Info(ctx, "reminder fired",
		logger.String("id", c.ID),
		logger.Int("leadMinutes", lead),
	)
}

package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/candidesk/candidesk/internal/domain/model"
)

// Wall-clock layouts accepted for stored datetime strings. Values are
// zone-less and compared as entered; no timezone conversion ever happens.
var wallClockLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseWallClock parses a stored wall-clock string. The boolean is false
// for empty or malformed input.
func ParseWallClock(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range wallClockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var monthNames = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatDateTime renders a wall-clock string as "Jan 2, 2006 at 3:04 PM".
// Empty or malformed input renders as "".
func FormatDateTime(s string) string {
	if s == "" {
		return ""
	}
	datePart, timePart, found := strings.Cut(s, "T")
	if !found {
		timePart = "00:00"
	}
	year, month, day, ok := splitDate(datePart)
	if !ok {
		return ""
	}
	parts := strings.Split(timePart, ":")
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return ""
	}
	minute := 0
	if len(parts) > 1 {
		if minute, err = strconv.Atoi(parts[1]); err != nil {
			return ""
		}
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%s %d, %d at %d:%02d %s", monthNames[month-1], day, year, hour, minute, ampm)
}

// FormatDate renders the date portion of a wall-clock string as
// "Jan 2, 2006".
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	datePart, _, _ := strings.Cut(s, "T")
	year, month, day, ok := splitDate(datePart)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s %d, %d", monthNames[month-1], day, year)
}

func splitDate(s string) (year, month, day int, ok bool) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var err error
	if year, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, false
	}
	if month, err = strconv.Atoi(parts[1]); err != nil || month < 1 || month > 12 {
		return 0, 0, 0, false
	}
	if day, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

// Subject derives the deterministic display title for a record. It doubles
// as the correlation key for external status updates, so the output for
// unchanged field values must be byte-identical across calls.
func Subject(c model.Candidate) string {
	name, tech := c.Name, c.Technology
	switch c.TaskType {
	case model.TaskInterview:
		return fmt.Sprintf("Interview Support - %s - %s - %s", name, tech, FormatDateTime(c.InterviewDateTime))
	case model.TaskAssessment:
		return fmt.Sprintf("Assessment Support - %s - %s - %s", name, tech, FormatDate(c.AssessmentDeadline))
	case model.TaskMock:
		return fmt.Sprintf("Mock Interview - %s - %s - %s - %s", name, tech, c.MockMode, FormatDateTime(c.AvailabilityDateTime))
	case model.TaskResumeUnderstanding:
		return fmt.Sprintf("Resume Understanding - %s - %s - %s", name, tech, FormatDateTime(c.AvailabilityDateTime))
	case model.TaskResumeReview:
		return fmt.Sprintf("Resume Making - %s - %s", name, tech)
	default:
		return ""
	}
}

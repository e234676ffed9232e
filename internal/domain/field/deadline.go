package field

import "time"

// DeadlineCategory classifies how an assessment deadline is inferred when
// the client did not state one explicitly.
type DeadlineCategory string

const (
	// DeadlineScreeningDone applies when the screening checkbox flips on.
	DeadlineScreeningDone DeadlineCategory = "screeningDone"
	// DeadlineNonTechnical covers non-technical assessments.
	DeadlineNonTechnical DeadlineCategory = "nonTechnical"
	// DeadlineTechnical covers technical assessments.
	DeadlineTechnical DeadlineCategory = "technical"
	// DeadlineUnknown is the fallback when the operator cannot classify.
	DeadlineUnknown DeadlineCategory = "unknown"
)

const (
	shortDeadlineDays = 3
	longDeadlineDays  = 7
)

// newYork is resolved once; the zone database ships with the Go runtime.
var newYork = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Without the IANA database the civil-date anchor cannot be
		// computed correctly; fail loudly at startup rather than drift.
		panic("field: load timezone " + name + ": " + err.Error())
	}
	return loc
}

// NewYorkWallClock projects an instant onto the America/New_York wall
// clock and re-reads it as a zone-less value. Operator-entered datetimes
// are zone-less wall clocks in the same frame, so the two subtract
// cleanly.
func NewYorkWallClock(now time.Time) time.Time {
	ny := now.In(newYork)
	return time.Date(ny.Year(), ny.Month(), ny.Day(), ny.Hour(), ny.Minute(), ny.Second(), 0, time.UTC)
}

// ComputeDeadline derives an assessment deadline from now and the
// category: three days out for screening-done and non-technical work,
// seven for technical or unclassified work. The offset is anchored on the
// America/New_York civil calendar date, not the UTC date, so a submission
// near midnight UTC lands on the day the operator actually sees.
func ComputeDeadline(now time.Time, category DeadlineCategory) string {
	days := longDeadlineDays
	switch category {
	case DeadlineScreeningDone, DeadlineNonTechnical:
		days = shortDeadlineDays
	case DeadlineTechnical, DeadlineUnknown:
		days = longDeadlineDays
	}

	ny := now.In(newYork)
	deadline := time.Date(ny.Year(), ny.Month(), ny.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	return deadline.Format("2006-01-02")
}

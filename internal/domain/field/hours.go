package field

// Default business-hours window for scheduling checks, in local
// wall-clock hours. The window is configurable at the service level.
const (
	BusinessOpenHour  = 9
	BusinessCloseHour = 18
)

// BusinessHoursWarning is the advisory shown when a schedule falls outside
// the window. The warning never blocks submission.
const BusinessHoursWarning = "Warning: The selected time is outside of business hours (9 AM - 6 PM)"

// OutsideWindow reports whether the wall-clock hour falls outside the
// open..close window. The hour is taken from the stored zone-less
// datetime, so no timezone conversion is involved.
func OutsideWindow(hour, open, close int) bool {
	return hour < open || hour >= close
}

// OutsideBusinessHours applies OutsideWindow with the default window.
func OutsideBusinessHours(hour int) bool {
	return OutsideWindow(hour, BusinessOpenHour, BusinessCloseHour)
}

package usecase

import "time"

const (
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04:05"
	emailDateLayout = "02-01-2006 15:04"
)

// reminderSendTime decides whether a booking gets a reminder and when it
// fires. Appointments closer than the cancellation window get none; the send
// time is clamped so a reminder never fires earlier than lead hours before
// the appointment.
func reminderSendTime(now, appointmentTime time.Time, window, lead time.Duration) (time.Time, bool) {
	sendThreshold := appointmentTime.Add(-window)
	if !now.Before(sendThreshold) {
		return time.Time{}, false
	}

	creationThreshold := appointmentTime.Add(-lead)
	if now.Before(creationThreshold) {
		return creationThreshold, true
	}
	return now, true
}

// combineDateTime joins the separate fecha and hora request fields into the
// slot key, in the practice's fixed time zone.
func combineDateTime(fecha, hora string) (time.Time, error) {
	day, err := time.ParseInLocation(dateLayout, fecha, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	clock, err := time.ParseInLocation(timeLayout, hora, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidTime
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, time.Local), nil
}

package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

func parseIntVar(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}

// parseSlot joins the fecha and hora request parts into the slot date-time,
// in the practice's local time zone.
func parseSlot(fecha, hora string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", fecha, time.Local)
	if err != nil {
		return time.Time{}, errors.New("invalid date, use YYYY-MM-DD")
	}
	clock, err := time.ParseInLocation("15:04:05", hora, time.Local)
	if err != nil {
		return time.Time{}, errors.New("invalid time, use HH:MM:SS")
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, time.Local), nil
}

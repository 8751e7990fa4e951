package booking

import (
	"time"

	"github.com/google/uuid"
)

const StatusConfirmed = "confirmed"

// Row is a single booked class slot of a user.
type Row struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	SectionID string    `json:"sectionId"`
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
}

// ExpandBookings emits one confirmed row per slot for every calendar date
// from start to end inclusive. Time of day on start and end is ignored.
// End before start yields no rows. Returned rows carry no ID.
func ExpandBookings(userID, sectionID string, start, end time.Time, slots WeekdaySlotMap) []Row {
	from, to := CivilDate(start), CivilDate(end)
	rows := []Row{}
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		for _, t := range slots.Times(date.Weekday()) {
			rows = append(rows, Row{
				Date:      date,
				Time:      t,
				SectionID: sectionID,
				UserID:    userID,
				Status:    StatusConfirmed,
			})
		}
	}
	return rows
}

// CivilDate drops the time of day, keeping the calendar date of t in its own location.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package domain

import "time"

type ShiftStatus string

const (
	ShiftStatusScheduled ShiftStatus = "scheduled"
	ShiftStatusConfirmed ShiftStatus = "confirmed"
	ShiftStatusCompleted ShiftStatus = "completed"
	ShiftStatusCancelled ShiftStatus = "cancelled"
)

// Shift times are clock strings ("HH:MM"). An end time earlier than the
// start time means the shift runs past midnight into the next day.
type Shift struct {
	ID        int64       `json:"id"`
	StationID int64       `json:"stationID"`
	WorkerID  int64       `json:"workerID"`
	ShiftDate time.Time   `json:"shiftDate"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
	Status    ShiftStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	Version   int32       `json:"-"`
}

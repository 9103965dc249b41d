package domain

import "time"

type TimesheetStatus string

const (
	TimesheetStatusOpen     TimesheetStatus = "open"
	TimesheetStatusApproved TimesheetStatus = "approved"
)

type TimesheetEntry struct {
	Date    time.Time `json:"date"`
	ShiftID int64     `json:"shiftID"`
	Minutes int       `json:"minutes"`
}

type Timesheet struct {
	ID           int64            `json:"id"`
	WorkerID     int64            `json:"workerID"`
	PeriodStart  time.Time        `json:"periodStart"`
	PeriodEnd    time.Time        `json:"periodEnd"`
	TotalMinutes int              `json:"totalMinutes"`
	Status       TimesheetStatus  `json:"status"`
	Entries      []TimesheetEntry `json:"entries"`
	CreatedAt    time.Time        `json:"createdAt"`
	Version      int32            `json:"-"`
}

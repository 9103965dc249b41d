package payroll

import (
	"sort"
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
	"github.com/paylinq/workforce/backend/internal/roster"
)

// BuildTimesheet derives a worker's timesheet for a period from their shifts.
// Shift durations use the overnight-aware clock math, so a 23:00-06:00 shift
// contributes 420 minutes to the day it started on. Cancelled shifts do not
// count. Period bounds are inclusive calendar days.
func BuildTimesheet(workerID int64, periodStart, periodEnd time.Time, shifts []*domain.Shift) *domain.Timesheet {
	ts := &domain.Timesheet{
		WorkerID:    workerID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      domain.TimesheetStatusOpen,
		Entries:     make([]domain.TimesheetEntry, 0),
	}

	dayAfterEnd := periodEnd.AddDate(0, 0, 1)
	for _, s := range shifts {
		if s.WorkerID != workerID || s.Status == domain.ShiftStatusCancelled {
			continue
		}
		if s.ShiftDate.Before(periodStart) || !s.ShiftDate.Before(dayAfterEnd) {
			continue
		}

		minutes := roster.ShiftDuration(s.StartTime, s.EndTime)
		ts.Entries = append(ts.Entries, domain.TimesheetEntry{
			Date:    s.ShiftDate,
			ShiftID: s.ID,
			Minutes: minutes,
		})
		ts.TotalMinutes += minutes
	}

	sort.Slice(ts.Entries, func(i, j int) bool {
		if ts.Entries[i].Date.Equal(ts.Entries[j].Date) {
			return ts.Entries[i].ShiftID < ts.Entries[j].ShiftID
		}
		return ts.Entries[i].Date.Before(ts.Entries[j].Date)
	})

	return ts
}

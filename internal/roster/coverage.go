package roster

import (
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
)

// CoverageResult annotates one slot with the shifts intersecting it and how
// well those shifts cover a template's required roles. It is derived data,
// recomputed per request and never persisted.
type CoverageResult struct {
	Slot           TimeSlot        `json:"slot"`
	Shifts         []*domain.Shift `json:"shifts"`
	RequiredRoles  []string        `json:"requiredRoles"`
	AssignedCount  int             `json:"assignedCount"`
	RequiredCount  int             `json:"requiredCount"`
	Percentage     float64         `json:"percentage"`
	IsFullyStaffed bool            `json:"isFullyStaffed"`
	HasGaps        bool            `json:"hasGaps"`
}

// SameDay compares two times by calendar day, ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ShiftsOnDay filters shifts down to the given calendar day and station.
// A zero stationID leaves the station unfiltered. Cancelled shifts never
// count toward coverage. Callers filter once per day and then run the
// per-slot overlap test on the (much smaller) result.
func ShiftsOnDay(day time.Time, stationID int64, shifts []*domain.Shift) []*domain.Shift {
	matched := make([]*domain.Shift, 0)
	for _, s := range shifts {
		if !SameDay(s.ShiftDate, day) {
			continue
		}
		if stationID != 0 && s.StationID != stationID {
			continue
		}
		if s.Status == domain.ShiftStatusCancelled {
			continue
		}
		matched = append(matched, s)
	}
	return matched
}

// ShiftsInSlot returns the subset of dayShifts whose [start,end) interval
// intersects the slot's window. Inputs are not mutated.
func ShiftsInSlot(dayShifts []*domain.Shift, slot TimeSlot, intervalMinutes int) []*domain.Shift {
	slotEnd := SlotEnd(slot, intervalMinutes)
	matched := make([]*domain.Shift, 0)
	for _, s := range dayShifts {
		if TimesOverlap(s.StartTime, s.EndTime, slot.Time, slotEnd) {
			matched = append(matched, s)
		}
	}
	return matched
}

// Aggregate computes role coverage for one slot. A required role is covered
// when some worker on a matching shift carries it, so duplicate shifts for
// the same role are absorbed by the set. An empty requiredRoles list is
// vacuously fully staffed. Over-staffing is allowed and simply reads as more
// than 100%.
func Aggregate(slot TimeSlot, slotShifts []*domain.Shift, workerRoles map[int64][]string, requiredRoles []string) CoverageResult {
	required := make(map[string]bool, len(requiredRoles))
	for _, role := range requiredRoles {
		required[role] = true
	}

	covered := make(map[string]bool)
	for _, s := range slotShifts {
		for _, role := range workerRoles[s.WorkerID] {
			if required[role] {
				covered[role] = true
			}
		}
	}

	assigned := len(covered)
	requiredCount := len(required)

	percentage := 100.0
	if requiredCount > 0 {
		percentage = float64(assigned) / float64(requiredCount) * 100
	}

	return CoverageResult{
		Slot:           slot,
		Shifts:         slotShifts,
		RequiredRoles:  requiredRoles,
		AssignedCount:  assigned,
		RequiredCount:  requiredCount,
		Percentage:     percentage,
		IsFullyStaffed: assigned >= requiredCount,
		HasGaps:        assigned < requiredCount,
	}
}

// BuildDayCoverage runs the whole pipeline for one day: generate the slot
// grid, map shifts into each slot and aggregate coverage against the
// template's required roles.
func BuildDayCoverage(day time.Time, stationID int64, intervalMinutes int, shifts []*domain.Shift, workerRoles map[int64][]string, requiredRoles []string) []CoverageResult {
	dayShifts := ShiftsOnDay(day, stationID, shifts)
	slots := GenerateTimeSlots(0, 24, intervalMinutes)

	results := make([]CoverageResult, 0, len(slots))
	for _, slot := range slots {
		matched := ShiftsInSlot(dayShifts, slot, intervalMinutes)
		results = append(results, Aggregate(slot, matched, workerRoles, requiredRoles))
	}
	return results
}

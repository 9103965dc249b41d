package roster

import (
	"fmt"
	"slices"

	"github.com/paylinq/workforce/backend/internal/domain"
)

// ValidateShiftWindow checks that both clock strings parse and the window is
// non-empty. An end before the start is legal: it marks an overnight shift.
func ValidateShiftWindow(start, end string) error {
	if _, err := ParseClock(start); err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	if _, err := ParseClock(end); err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if start == end {
		return fmt.Errorf("shift must not start and end at %s", start)
	}
	return nil
}

// ValidateTemplateSlots checks every slot's times parse, each slot ends after
// it starts, and no two slots sharing a day overlap. Template slots stay
// within one day; overnight windows are a property of concrete shifts, not
// staffing templates.
func ValidateTemplateSlots(st *domain.ShiftTemplate) error {
	for i, slot := range st.Slots {
		if _, err := ParseClock(slot.StartTime); err != nil {
			return fmt.Errorf("slot %d start time: %w", i, err)
		}
		if _, err := ParseClock(slot.EndTime); err != nil {
			return fmt.Errorf("slot %d end time: %w", i, err)
		}
		if slot.EndTime <= slot.StartTime {
			return fmt.Errorf("slot %d must end after it starts", i)
		}
	}

	for i := 0; i < len(st.Slots); i++ {
		for j := i + 1; j < len(st.Slots); j++ {
			if !slotsShareDay(st.Slots[i], st.Slots[j]) {
				continue
			}
			if TimesOverlap(st.Slots[i].StartTime, st.Slots[i].EndTime, st.Slots[j].StartTime, st.Slots[j].EndTime) {
				return fmt.Errorf("slots %d and %d overlap", i, j)
			}
		}
	}

	return nil
}

func slotsShareDay(a, b domain.ShiftTemplateSlot) bool {
	for _, day := range a.Days {
		if slices.Contains(b.Days, day) {
			return true
		}
	}
	return false
}

// FindConflict returns the first existing shift of the worker on the same
// calendar day whose window overlaps the candidate, ignoring the candidate
// itself and cancelled shifts.
func FindConflict(candidate *domain.Shift, existing []*domain.Shift) *domain.Shift {
	for _, s := range existing {
		if s.ID == candidate.ID || s.Status == domain.ShiftStatusCancelled {
			continue
		}
		if !SameDay(s.ShiftDate, candidate.ShiftDate) {
			continue
		}
		if TimesOverlap(s.StartTime, s.EndTime, candidate.StartTime, candidate.EndTime) {
			return s
		}
	}
	return nil
}

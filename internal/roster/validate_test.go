package roster

import (
	"testing"
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
)

func TestValidateShiftWindow(t *testing.T) {
	if err := ValidateShiftWindow("09:00", "17:00"); err != nil {
		t.Errorf("normal window rejected: %v", err)
	}
	// overnight windows are allowed for shifts
	if err := ValidateShiftWindow("23:00", "06:00"); err != nil {
		t.Errorf("overnight window rejected: %v", err)
	}
	if err := ValidateShiftWindow("09:00", "09:00"); err == nil {
		t.Error("empty window accepted")
	}
	if err := ValidateShiftWindow("9:00", "17:00"); err == nil {
		t.Error("malformed start accepted")
	}
}

func TestValidateTemplateSlots(t *testing.T) {
	ok := &domain.ShiftTemplate{
		Slots: []domain.ShiftTemplateSlot{
			{StartTime: "09:00", EndTime: "12:00", Days: []int32{1, 2}},
			{StartTime: "12:00", EndTime: "17:00", Days: []int32{1, 2}}, // touching is fine
		},
	}
	if err := ValidateTemplateSlots(ok); err != nil {
		t.Errorf("valid template rejected: %v", err)
	}

	overlapping := &domain.ShiftTemplate{
		Slots: []domain.ShiftTemplateSlot{
			{StartTime: "09:00", EndTime: "13:00", Days: []int32{1}},
			{StartTime: "12:00", EndTime: "17:00", Days: []int32{1}},
		},
	}
	if err := ValidateTemplateSlots(overlapping); err == nil {
		t.Error("overlapping same-day slots accepted")
	}

	disjointDays := &domain.ShiftTemplate{
		Slots: []domain.ShiftTemplateSlot{
			{StartTime: "09:00", EndTime: "13:00", Days: []int32{1}},
			{StartTime: "12:00", EndTime: "17:00", Days: []int32{2}},
		},
	}
	if err := ValidateTemplateSlots(disjointDays); err != nil {
		t.Errorf("slots on different days rejected: %v", err)
	}

	inverted := &domain.ShiftTemplate{
		Slots: []domain.ShiftTemplateSlot{
			{StartTime: "17:00", EndTime: "09:00", Days: []int32{1}},
		},
	}
	if err := ValidateTemplateSlots(inverted); err == nil {
		t.Error("inverted template slot accepted")
	}
}

func TestFindConflict(t *testing.T) {
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	existing := []*domain.Shift{
		{ID: 1, WorkerID: 7, ShiftDate: monday, StartTime: "09:00", EndTime: "17:00", Status: domain.ShiftStatusScheduled},
		{ID: 2, WorkerID: 7, ShiftDate: tuesday, StartTime: "09:00", EndTime: "17:00", Status: domain.ShiftStatusScheduled},
		{ID: 3, WorkerID: 7, ShiftDate: monday, StartTime: "17:00", EndTime: "22:00", Status: domain.ShiftStatusCancelled},
	}

	candidate := &domain.Shift{ID: 9, WorkerID: 7, ShiftDate: monday, StartTime: "16:00", EndTime: "20:00"}
	if got := FindConflict(candidate, existing); got == nil || got.ID != 1 {
		t.Errorf("expected conflict with shift 1, got %+v", got)
	}

	// same window on another day is fine
	candidate = &domain.Shift{ID: 9, WorkerID: 7, ShiftDate: monday, StartTime: "17:00", EndTime: "20:00"}
	if got := FindConflict(candidate, existing); got != nil {
		t.Errorf("unexpected conflict with shift %d (cancelled or touching)", got.ID)
	}

	// a shift being moved does not conflict with itself
	candidate = &domain.Shift{ID: 1, WorkerID: 7, ShiftDate: monday, StartTime: "10:00", EndTime: "18:00"}
	if got := FindConflict(candidate, existing); got != nil {
		t.Errorf("shift conflicts with itself via %d", got.ID)
	}
}

func TestFindConflict_ShiftGainedAfterRequest(t *testing.T) {
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)

	// a worker cleared to take over a window earlier is no longer free once
	// they pick up an overlapping shift of their own
	candidate := &domain.Shift{WorkerID: 8, ShiftDate: monday, StartTime: "09:00", EndTime: "17:00"}
	if got := FindConflict(candidate, nil); got != nil {
		t.Fatalf("unexpected conflict %d on an empty schedule", got.ID)
	}

	gained := []*domain.Shift{
		{ID: 4, WorkerID: 8, ShiftDate: monday, StartTime: "12:00", EndTime: "20:00", Status: domain.ShiftStatusScheduled},
	}
	if got := FindConflict(candidate, gained); got == nil || got.ID != 4 {
		t.Errorf("expected conflict with shift 4, got %+v", got)
	}
}

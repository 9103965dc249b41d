package roster

import (
	"reflect"
	"testing"
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func shift(id, stationID, workerID int64, date time.Time, start, end string) *domain.Shift {
	return &domain.Shift{
		ID:        id,
		StationID: stationID,
		WorkerID:  workerID,
		ShiftDate: date,
		StartTime: start,
		EndTime:   end,
		Status:    domain.ShiftStatusScheduled,
	}
}

func TestShiftsOnDay(t *testing.T) {
	monday := day(2026, time.March, 2)
	tuesday := day(2026, time.March, 3)

	shifts := []*domain.Shift{
		shift(1, 10, 1, monday, "09:00", "17:00"),
		shift(2, 20, 2, monday, "09:00", "17:00"),
		shift(3, 10, 3, tuesday, "09:00", "17:00"),
	}

	// day comparison is by calendar day, not timestamp
	mondayNoon := monday.Add(12 * time.Hour)
	got := ShiftsOnDay(mondayNoon, 10, shifts)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected shift 1 only, got %d shifts", len(got))
	}

	// zero station means unfiltered
	got = ShiftsOnDay(monday, 0, shifts)
	if len(got) != 2 {
		t.Fatalf("expected 2 shifts on monday, got %d", len(got))
	}

	cancelled := shift(4, 10, 4, monday, "09:00", "17:00")
	cancelled.Status = domain.ShiftStatusCancelled
	got = ShiftsOnDay(monday, 10, append(shifts, cancelled))
	if len(got) != 1 {
		t.Fatalf("cancelled shift should be excluded, got %d shifts", len(got))
	}
}

func TestShiftsInSlot(t *testing.T) {
	monday := day(2026, time.March, 2)
	dayShifts := []*domain.Shift{
		shift(1, 10, 1, monday, "09:00", "17:00"),
		shift(2, 10, 2, monday, "06:00", "09:00"), // touches 09:00, must not match the 09:00 slot
	}

	slot := TimeSlot{Time: "09:00", Hour: 9}
	got := ShiftsInSlot(dayShifts, slot, 15)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected shift 1 only in 09:00 slot, got %d shifts", len(got))
	}
}

func TestShiftsInSlot_Idempotent(t *testing.T) {
	monday := day(2026, time.March, 2)
	dayShifts := []*domain.Shift{
		shift(1, 10, 1, monday, "09:00", "17:00"),
		shift(2, 10, 2, monday, "13:00", "21:00"),
	}
	slot := TimeSlot{Time: "13:00", Hour: 13}

	first := ShiftsInSlot(dayShifts, slot, 15)
	second := ShiftsInSlot(dayShifts, slot, 15)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated mapping over identical inputs differs")
	}
	if len(dayShifts) != 2 {
		t.Error("input shift list was mutated")
	}
}

func TestAggregate_VacuousFullCoverage(t *testing.T) {
	monday := day(2026, time.March, 2)
	slot := TimeSlot{Time: "09:00", Hour: 9}
	slotShifts := []*domain.Shift{shift(1, 10, 1, monday, "09:00", "17:00")}
	workerRoles := map[int64][]string{1: {"cashier"}}

	// no required roles means vacuously fully staffed, regardless of shifts
	got := Aggregate(slot, slotShifts, workerRoles, nil)
	if got.Percentage != 100 || !got.IsFullyStaffed || got.HasGaps {
		t.Errorf("empty requirements: percentage=%v fullyStaffed=%v hasGaps=%v", got.Percentage, got.IsFullyStaffed, got.HasGaps)
	}

	got = Aggregate(slot, nil, nil, nil)
	if got.Percentage != 100 || !got.IsFullyStaffed {
		t.Errorf("empty everything: percentage=%v fullyStaffed=%v", got.Percentage, got.IsFullyStaffed)
	}
}

func TestAggregate_PartialCoverage(t *testing.T) {
	monday := day(2026, time.March, 2)
	slot := TimeSlot{Time: "09:00", Hour: 9}
	slotShifts := []*domain.Shift{shift(1, 10, 1, monday, "09:00", "17:00")}
	workerRoles := map[int64][]string{1: {"cashier"}}

	got := Aggregate(slot, slotShifts, workerRoles, []string{"cashier", "stocker"})
	if got.AssignedCount != 1 || got.RequiredCount != 2 {
		t.Errorf("assigned=%d required=%d, want 1/2", got.AssignedCount, got.RequiredCount)
	}
	if got.Percentage != 50 {
		t.Errorf("percentage = %v, want 50", got.Percentage)
	}
	if !got.HasGaps || got.IsFullyStaffed {
		t.Errorf("hasGaps=%v fullyStaffed=%v", got.HasGaps, got.IsFullyStaffed)
	}
}

func TestAggregate_CoverageIsSetIntersection(t *testing.T) {
	monday := day(2026, time.March, 2)
	slot := TimeSlot{Time: "09:00", Hour: 9}
	// two workers both covering cashier: the covered-role set absorbs the
	// duplicate, and a role outside the requirement does not count
	slotShifts := []*domain.Shift{
		shift(1, 10, 1, monday, "09:00", "17:00"),
		shift(2, 10, 2, monday, "09:00", "17:00"),
	}
	workerRoles := map[int64][]string{
		1: {"cashier", "cleaner"},
		2: {"cashier"},
	}

	got := Aggregate(slot, slotShifts, workerRoles, []string{"cashier", "stocker"})
	if got.AssignedCount != 1 {
		t.Errorf("assigned = %d, want 1 (cashier covered once)", got.AssignedCount)
	}
}

func TestAggregate_OverStaffingDoesNotClamp(t *testing.T) {
	monday := day(2026, time.March, 2)
	slot := TimeSlot{Time: "09:00", Hour: 9}
	slotShifts := []*domain.Shift{
		shift(1, 10, 1, monday, "09:00", "17:00"),
		shift(2, 10, 2, monday, "09:00", "17:00"),
	}
	workerRoles := map[int64][]string{
		1: {"cashier"},
		2: {"stocker"},
	}

	got := Aggregate(slot, slotShifts, workerRoles, []string{"cashier"})
	// stocker is not required, so assigned stays at 1 and nothing crashes
	if got.AssignedCount != 1 || got.Percentage != 100 || !got.IsFullyStaffed {
		t.Errorf("assigned=%d percentage=%v fullyStaffed=%v", got.AssignedCount, got.Percentage, got.IsFullyStaffed)
	}
}

func TestBuildDayCoverage(t *testing.T) {
	monday := day(2026, time.March, 2)
	shifts := []*domain.Shift{
		shift(1, 10, 1, monday, "09:00", "17:00"),
	}
	workerRoles := map[int64][]string{1: {"cashier"}}

	results := BuildDayCoverage(monday, 10, 15, shifts, workerRoles, []string{"cashier"})
	if len(results) != 96 {
		t.Fatalf("expected 96 results, got %d", len(results))
	}

	// 09:00 through 16:45 inclusive are covered
	for _, r := range results {
		covered := r.Slot.Time >= "09:00" && r.Slot.Time < "17:00"
		if covered && r.AssignedCount != 1 {
			t.Errorf("slot %s: assigned=%d, want 1", r.Slot.Time, r.AssignedCount)
		}
		if !covered && r.AssignedCount != 0 {
			t.Errorf("slot %s: assigned=%d, want 0", r.Slot.Time, r.AssignedCount)
		}
	}
}

func TestGroupCoverage(t *testing.T) {
	monday := day(2026, time.March, 2)
	shifts := []*domain.Shift{
		shift(1, 10, 1, monday, "09:00", "17:00"),
	}
	workerRoles := map[int64][]string{1: {"cashier"}}

	results := BuildDayCoverage(monday, 10, 15, shifts, workerRoles, []string{"cashier"})
	blocks := GroupCoverage(results, 15)

	// gap, staffed 09:00-17:00, gap
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	if blocks[0].StartTime != "00:00" || blocks[0].EndTime != "09:00" {
		t.Errorf("block 0 range %s-%s", blocks[0].StartTime, blocks[0].EndTime)
	}
	if blocks[1].StartTime != "09:00" || blocks[1].EndTime != "17:00" || !blocks[1].IsFullyStaffed {
		t.Errorf("block 1 range %s-%s fullyStaffed=%v", blocks[1].StartTime, blocks[1].EndTime, blocks[1].IsFullyStaffed)
	}
	if blocks[2].StartTime != "17:00" || blocks[2].EndTime != "24:00" {
		t.Errorf("block 2 range %s-%s", blocks[2].StartTime, blocks[2].EndTime)
	}

	// grouping must not change the underlying slot data
	total := 0
	for _, b := range blocks {
		total += len(b.Slots)
	}
	if total != len(results) {
		t.Errorf("blocks hold %d slots, want %d", total, len(results))
	}
}

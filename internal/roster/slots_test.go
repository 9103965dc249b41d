package roster

import "testing"

func TestGenerateTimeSlots_FullDayQuarterHour(t *testing.T) {
	slots := GenerateTimeSlots(0, 24, 15)

	if len(slots) != 96 {
		t.Fatalf("expected 96 slots, got %d", len(slots))
	}
	if slots[0].Time != "00:00" {
		t.Errorf("first slot %q, want 00:00", slots[0].Time)
	}
	if slots[95].Time != "23:45" {
		t.Errorf("last slot %q, want 23:45", slots[95].Time)
	}

	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if cur.Time <= prev.Time {
			t.Fatalf("slots not strictly ascending at %d: %q then %q", i, prev.Time, cur.Time)
		}
		if TimeToMinutes(cur.Time)-TimeToMinutes(prev.Time) != 15 {
			t.Fatalf("gap between %q and %q", prev.Time, cur.Time)
		}
	}
}

func TestGenerateTimeSlots_HourAndQuarterIndexes(t *testing.T) {
	slots := GenerateTimeSlots(9, 11, 15)
	if len(slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(slots))
	}
	if slots[0].Hour != 9 || slots[0].Quarter != 0 {
		t.Errorf("slot 0: hour=%d quarter=%d", slots[0].Hour, slots[0].Quarter)
	}
	if slots[3].Time != "09:45" || slots[3].Quarter != 3 {
		t.Errorf("slot 3: time=%q quarter=%d", slots[3].Time, slots[3].Quarter)
	}
	if slots[4].Hour != 10 || slots[4].Quarter != 0 {
		t.Errorf("slot 4: hour=%d quarter=%d", slots[4].Hour, slots[4].Quarter)
	}
}

func TestGenerateTimeSlots_Degenerate(t *testing.T) {
	if got := GenerateTimeSlots(10, 10, 15); got != nil {
		t.Errorf("empty range: expected nil, got %d slots", len(got))
	}
	if got := GenerateTimeSlots(0, 24, 0); got != nil {
		t.Errorf("zero interval: expected nil, got %d slots", len(got))
	}
}

func TestSlotEnd(t *testing.T) {
	slots := GenerateTimeSlots(0, 24, 15)
	if got := SlotEnd(slots[95], 15); got != "24:00" {
		t.Errorf("SlotEnd of last slot = %q, want 24:00", got)
	}
	if got := SlotEnd(slots[0], 15); got != "00:15" {
		t.Errorf("SlotEnd of first slot = %q, want 00:15", got)
	}
}

package roster

// TimeSlot is one cell of the day grid. Quarter is the sub-hour index and is
// only meaningful for a 15-minute interval.
type TimeSlot struct {
	Time    string `json:"time"`
	Hour    int    `json:"hour"`
	Quarter int    `json:"quarter"`
	Label   string `json:"label"`
}

// GenerateTimeSlots produces the slots covering [startHour, endHour) at the
// given interval, in ascending order with no gaps and no overlaps.
// GenerateTimeSlots(0, 24, 15) yields 96 slots from "00:00" to "23:45".
func GenerateTimeSlots(startHour, endHour, intervalMinutes int) []TimeSlot {
	if intervalMinutes <= 0 || endHour <= startHour {
		return nil
	}

	total := (endHour - startHour) * 60 / intervalMinutes
	slots := make([]TimeSlot, 0, total)

	for m := startHour * 60; m < endHour*60; m += intervalMinutes {
		t := MinutesToTime(m)
		slots = append(slots, TimeSlot{
			Time:    t,
			Hour:    m / 60,
			Quarter: (m % 60) / 15,
			Label:   FormatTime(t),
		})
	}

	return slots
}

// SlotEnd returns the exclusive end of a slot's window. The last slot of a
// day ends at "24:00", which is deliberately not wrapped so that half-open
// string comparison keeps working.
func SlotEnd(slot TimeSlot, intervalMinutes int) string {
	return MinutesToTime(TimeToMinutes(slot.Time) + intervalMinutes)
}

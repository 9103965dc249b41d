package roster

// CoverageBlock is a run of consecutive slots with identical staffing state,
// merged for compact display. Grouping is a read-only view over the computed
// slot array; the per-slot results are untouched.
type CoverageBlock struct {
	StartTime      string           `json:"startTime"`
	EndTime        string           `json:"endTime"`
	Percentage     float64          `json:"percentage"`
	IsFullyStaffed bool             `json:"isFullyStaffed"`
	Slots          []CoverageResult `json:"slots"`
}

// GroupCoverage merges consecutive results sharing the same
// (isFullyStaffed, percentage) pair into blocks spanning their combined
// time range.
func GroupCoverage(results []CoverageResult, intervalMinutes int) []CoverageBlock {
	if len(results) == 0 {
		return nil
	}

	blocks := make([]CoverageBlock, 0)
	current := CoverageBlock{
		StartTime:      results[0].Slot.Time,
		EndTime:        SlotEnd(results[0].Slot, intervalMinutes),
		Percentage:     results[0].Percentage,
		IsFullyStaffed: results[0].IsFullyStaffed,
		Slots:          []CoverageResult{results[0]},
	}

	for _, r := range results[1:] {
		if r.IsFullyStaffed == current.IsFullyStaffed && r.Percentage == current.Percentage {
			current.EndTime = SlotEnd(r.Slot, intervalMinutes)
			current.Slots = append(current.Slots, r)
			continue
		}
		blocks = append(blocks, current)
		current = CoverageBlock{
			StartTime:      r.Slot.Time,
			EndTime:        SlotEnd(r.Slot, intervalMinutes),
			Percentage:     r.Percentage,
			IsFullyStaffed: r.IsFullyStaffed,
			Slots:          []CoverageResult{r},
		}
	}

	return append(blocks, current)
}

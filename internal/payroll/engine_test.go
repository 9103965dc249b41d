package payroll

import (
	"testing"
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
)

// identityConverter treats every currency pair as 1:1.
type identityConverter struct{}

func (identityConverter) Convert(amount int64, from, to string) (int64, error) {
	return amount, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildTimesheet(t *testing.T) {
	start := date(2026, time.March, 2) // a Monday
	end := date(2026, time.March, 8)

	shifts := []*domain.Shift{
		{ID: 1, WorkerID: 7, ShiftDate: date(2026, time.March, 2), StartTime: "09:00", EndTime: "17:00", Status: domain.ShiftStatusCompleted},
		{ID: 2, WorkerID: 7, ShiftDate: date(2026, time.March, 3), StartTime: "23:00", EndTime: "06:00", Status: domain.ShiftStatusCompleted},
		{ID: 3, WorkerID: 7, ShiftDate: date(2026, time.March, 9), StartTime: "09:00", EndTime: "17:00", Status: domain.ShiftStatusScheduled}, // outside period
		{ID: 4, WorkerID: 8, ShiftDate: date(2026, time.March, 2), StartTime: "09:00", EndTime: "17:00", Status: domain.ShiftStatusCompleted}, // other worker
		{ID: 5, WorkerID: 7, ShiftDate: date(2026, time.March, 4), StartTime: "09:00", EndTime: "17:00", Status: domain.ShiftStatusCancelled},
	}

	ts := BuildTimesheet(7, start, end, shifts)
	if len(ts.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ts.Entries))
	}
	// overnight shift counted with the day-wrap rule
	if ts.Entries[1].Minutes != 420 {
		t.Errorf("overnight entry minutes = %d, want 420", ts.Entries[1].Minutes)
	}
	if ts.TotalMinutes != 480+420 {
		t.Errorf("total minutes = %d, want 900", ts.TotalMinutes)
	}
}

func TestEngineCalculate_BaseWage(t *testing.T) {
	engine := NewEngine(identityConverter{}, 2400)
	run := &domain.PayrollRun{ID: 1, Currency: "USD"}

	ts := &domain.Timesheet{
		Entries: []domain.TimesheetEntry{
			{Date: date(2026, time.March, 2), Minutes: 480},
			{Date: date(2026, time.March, 3), Minutes: 480},
		},
		TotalMinutes: 960,
	}

	entry, err := engine.Calculate(run, WorkerInput{
		Worker:    &domain.Worker{ID: 7, HourlyRate: 2000, Currency: "USD"},
		Timesheet: ts,
	})
	if err != nil {
		t.Fatal(err)
	}
	if entry.RegularMinutes != 960 || entry.OvertimeMinutes != 0 {
		t.Errorf("minutes split %d/%d", entry.RegularMinutes, entry.OvertimeMinutes)
	}
	// 16 hours at 20.00
	if entry.GrossAmount != 32000 {
		t.Errorf("gross = %d, want 32000", entry.GrossAmount)
	}
	if entry.NetAmount != entry.GrossAmount {
		t.Errorf("net = %d, want %d", entry.NetAmount, entry.GrossAmount)
	}
	if entry.Reference == "" {
		t.Error("entry has no payment reference")
	}
}

func TestEngineCalculate_OvertimePerWeek(t *testing.T) {
	engine := NewEngine(identityConverter{}, 2400) // 40h threshold

	// week one: 45h. week two: 35h. Only week one's overflow is overtime.
	var entries []domain.TimesheetEntry
	for d := 0; d < 5; d++ {
		entries = append(entries, domain.TimesheetEntry{Date: date(2026, time.March, 2+d), Minutes: 540}) // 9h x 5
	}
	for d := 0; d < 5; d++ {
		entries = append(entries, domain.TimesheetEntry{Date: date(2026, time.March, 9+d), Minutes: 420}) // 7h x 5
	}

	run := &domain.PayrollRun{Currency: "USD"}
	entry, err := engine.Calculate(run, WorkerInput{
		Worker:     &domain.Worker{ID: 7, HourlyRate: 1000, Currency: "USD"},
		WorkerType: &domain.WorkerType{OvertimeMultiplier: 1.5},
		Timesheet:  &domain.Timesheet{Entries: entries},
	})
	if err != nil {
		t.Fatal(err)
	}
	if entry.OvertimeMinutes != 300 {
		t.Errorf("overtime = %d, want 300", entry.OvertimeMinutes)
	}
	if entry.RegularMinutes != 2400+2100 {
		t.Errorf("regular = %d, want 4500", entry.RegularMinutes)
	}
	// 75h regular at 10.00 + 5h overtime at 15.00
	if entry.GrossAmount != 75000+7500 {
		t.Errorf("gross = %d, want 82500", entry.GrossAmount)
	}
}

func TestEngineCalculate_WorkerTypeThreshold(t *testing.T) {
	engine := NewEngine(identityConverter{}, 2400) // default 40h

	// one 40h week
	var entries []domain.TimesheetEntry
	for d := 0; d < 5; d++ {
		entries = append(entries, domain.TimesheetEntry{Date: date(2026, time.March, 2+d), Minutes: 480})
	}

	run := &domain.PayrollRun{Currency: "USD"}
	worker := &domain.Worker{ID: 7, HourlyRate: 1000, Currency: "USD"}

	// the worker type's own 30h threshold wins over the engine default
	entry, err := engine.Calculate(run, WorkerInput{
		Worker:     worker,
		WorkerType: &domain.WorkerType{OvertimeMultiplier: 2, WeeklyOvertimeThreshold: 1800},
		Timesheet:  &domain.Timesheet{Entries: entries},
	})
	if err != nil {
		t.Fatal(err)
	}
	if entry.RegularMinutes != 1800 || entry.OvertimeMinutes != 600 {
		t.Errorf("minutes split %d/%d, want 1800/600", entry.RegularMinutes, entry.OvertimeMinutes)
	}
	// 30h at 10.00 + 10h at 20.00
	if entry.GrossAmount != 30000+20000 {
		t.Errorf("gross = %d, want 50000", entry.GrossAmount)
	}

	// a type without its own threshold falls back to the engine default
	entry, err = engine.Calculate(run, WorkerInput{
		Worker:     worker,
		WorkerType: &domain.WorkerType{OvertimeMultiplier: 2},
		Timesheet:  &domain.Timesheet{Entries: entries},
	})
	if err != nil {
		t.Fatal(err)
	}
	if entry.OvertimeMinutes != 0 {
		t.Errorf("overtime = %d, want 0 under the 40h default", entry.OvertimeMinutes)
	}
}

func TestEngineCalculate_Components(t *testing.T) {
	engine := NewEngine(identityConverter{}, 0) // no overtime threshold
	run := &domain.PayrollRun{Currency: "USD"}

	structure := &domain.PayStructure{
		Components: []domain.PayComponent{
			{Code: "MEAL", Name: "Meal allowance", Type: domain.ComponentTypeEarning, Method: domain.MethodFixed, Amount: 5000, Currency: "USD"},
			{Code: "NIGHT", Name: "Night differential", Type: domain.ComponentTypeEarning, Method: domain.MethodHourly, Amount: 200, Currency: "USD"},
			{Code: "PENSION", Name: "Pension", Type: domain.ComponentTypeDeduction, Method: domain.MethodPercentage, Rate: 500}, // 5%
		},
	}

	ts := &domain.Timesheet{
		Entries: []domain.TimesheetEntry{{Date: date(2026, time.March, 2), Minutes: 600}}, // 10h
	}

	entry, err := engine.Calculate(run, WorkerInput{
		Worker:    &domain.Worker{ID: 7, HourlyRate: 1000, Currency: "USD"},
		Structure: structure,
		Timesheet: ts,
	})
	if err != nil {
		t.Fatal(err)
	}

	// base 10000 + meal 5000 + night 10h x 2.00 = 2000
	if entry.GrossAmount != 17000 {
		t.Errorf("gross = %d, want 17000", entry.GrossAmount)
	}
	// pension applies to the gross at the point it is evaluated (after both earnings)
	if entry.DeductionAmount != 850 {
		t.Errorf("deductions = %d, want 850", entry.DeductionAmount)
	}
	if entry.NetAmount != 17000-850 {
		t.Errorf("net = %d, want 16150", entry.NetAmount)
	}
	if len(entry.Lines) != 4 {
		t.Errorf("expected 4 lines, got %d", len(entry.Lines))
	}
}

func TestEngineCalculate_EmptyTimesheet(t *testing.T) {
	engine := NewEngine(identityConverter{}, 2400)
	run := &domain.PayrollRun{Currency: "USD"}

	entry, err := engine.Calculate(run, WorkerInput{
		Worker: &domain.Worker{ID: 7, HourlyRate: 1000, Currency: "USD"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if entry.GrossAmount != 0 || entry.NetAmount != 0 {
		t.Errorf("empty timesheet: gross=%d net=%d", entry.GrossAmount, entry.NetAmount)
	}
}

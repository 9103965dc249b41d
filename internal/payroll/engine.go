package payroll

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/paylinq/workforce/backend/internal/domain"
)

// Converter turns an amount in minor units of one currency into another.
// The currency package provides the production implementation backed by the
// stored FX rates.
type Converter interface {
	Convert(amount int64, from, to string) (int64, error)
}

type Engine struct {
	converter             Converter
	overtimeWeeklyMinutes int
}

func NewEngine(converter Converter, overtimeWeeklyMinutes int) *Engine {
	return &Engine{
		converter:             converter,
		overtimeWeeklyMinutes: overtimeWeeklyMinutes,
	}
}

// WorkerInput bundles everything the engine needs for one worker's line.
type WorkerInput struct {
	Worker     *domain.Worker
	WorkerType *domain.WorkerType
	Structure  *domain.PayStructure
	Timesheet  *domain.Timesheet
}

// Calculate produces the payroll entry for one worker in a run.
//
// Minutes beyond the weekly overtime threshold are paid at the worker type's
// multiplier; the threshold is the worker type's own when set, the engine
// default otherwise. The base wage comes from the worker's hourly rate; the pay
// structure then layers fixed amounts, per-hour amounts and percentage
// components (basis points of the gross earned so far) on top, with
// deductions subtracted at the end. Every amount is converted into the run
// currency before it is summed.
func (e *Engine) Calculate(run *domain.PayrollRun, in WorkerInput) (*domain.PayrollEntry, error) {
	if in.Worker == nil {
		return nil, fmt.Errorf("payroll input has no worker")
	}

	threshold := e.overtimeWeeklyMinutes
	if in.WorkerType != nil && in.WorkerType.WeeklyOvertimeThreshold > 0 {
		threshold = in.WorkerType.WeeklyOvertimeThreshold
	}
	regular, overtime := splitOvertime(in.Timesheet, threshold)

	entry := &domain.PayrollEntry{
		PayrollRunID:    run.ID,
		WorkerID:        in.Worker.ID,
		Reference:       uuid.NewString(),
		RegularMinutes:  regular,
		OvertimeMinutes: overtime,
		Lines:           make([]domain.PayrollEntryLine, 0),
	}

	// base wage
	multiplier := 1.0
	if in.WorkerType != nil && in.WorkerType.OvertimeMultiplier > 0 {
		multiplier = in.WorkerType.OvertimeMultiplier
	}
	base := minutesPay(regular, in.Worker.HourlyRate)
	base += int64(float64(minutesPay(overtime, in.Worker.HourlyRate)) * multiplier)

	base, err := e.converter.Convert(base, in.Worker.Currency, run.Currency)
	if err != nil {
		return nil, err
	}
	entry.GrossAmount = base
	entry.Lines = append(entry.Lines, domain.PayrollEntryLine{
		ComponentCode: "BASE",
		ComponentName: "Base wage",
		Type:          domain.ComponentTypeEarning,
		Amount:        base,
	})

	if in.Structure != nil {
		for _, comp := range in.Structure.Components {
			amount, err := e.componentAmount(run, entry, comp, regular+overtime)
			if err != nil {
				return nil, err
			}
			if amount == 0 {
				continue
			}

			entry.Lines = append(entry.Lines, domain.PayrollEntryLine{
				ComponentCode: comp.Code,
				ComponentName: comp.Name,
				Type:          comp.Type,
				Amount:        amount,
			})
			switch comp.Type {
			case domain.ComponentTypeEarning:
				entry.GrossAmount += amount
			case domain.ComponentTypeDeduction:
				entry.DeductionAmount += amount
			}
		}
	}

	entry.NetAmount = entry.GrossAmount - entry.DeductionAmount
	return entry, nil
}

func (e *Engine) componentAmount(run *domain.PayrollRun, entry *domain.PayrollEntry, comp domain.PayComponent, workedMinutes int) (int64, error) {
	switch comp.Method {
	case domain.MethodFixed:
		return e.converter.Convert(comp.Amount, comp.Currency, run.Currency)
	case domain.MethodHourly:
		return e.converter.Convert(minutesPay(workedMinutes, comp.Amount), comp.Currency, run.Currency)
	case domain.MethodPercentage:
		// already in run currency: applied to the converted gross
		return entry.GrossAmount * int64(comp.Rate) / 10_000, nil
	default:
		return 0, fmt.Errorf("unknown pay component method %q", comp.Method)
	}
}

// splitOvertime buckets timesheet minutes into regular and overtime, applying
// the weekly threshold per ISO week so a long first week cannot borrow
// headroom from a short second one.
func splitOvertime(ts *domain.Timesheet, threshold int) (regular, overtime int) {
	if ts == nil {
		return 0, 0
	}

	weekly := make(map[string]int)
	for _, entry := range ts.Entries {
		year, week := entry.Date.ISOWeek()
		weekly[fmt.Sprintf("%d-%02d", year, week)] += entry.Minutes
	}

	for _, minutes := range weekly {
		if threshold > 0 && minutes > threshold {
			regular += threshold
			overtime += minutes - threshold
		} else {
			regular += minutes
		}
	}
	return regular, overtime
}

func minutesPay(minutes int, hourlyRate int64) int64 {
	return hourlyRate * int64(minutes) / 60
}

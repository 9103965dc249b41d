package payroll

import (
	"fmt"
	"slices"

	"github.com/paylinq/workforce/backend/internal/domain"
)

// Legal payroll run transitions. A run is calculated while processing, sent
// back to draft when review rejects it, and frozen once paid or cancelled.
var transitions = map[domain.PayrollRunStatus][]domain.PayrollRunStatus{
	domain.PayrollRunStatusDraft:      {domain.PayrollRunStatusProcessing, domain.PayrollRunStatusCancelled},
	domain.PayrollRunStatusProcessing: {domain.PayrollRunStatusReview},
	domain.PayrollRunStatusReview:     {domain.PayrollRunStatusApproved, domain.PayrollRunStatusDraft, domain.PayrollRunStatusCancelled},
	domain.PayrollRunStatusApproved:   {domain.PayrollRunStatusPaid},
	domain.PayrollRunStatusPaid:       {},
	domain.PayrollRunStatusCancelled:  {},
}

func CanTransition(from, to domain.PayrollRunStatus) bool {
	return slices.Contains(transitions[from], to)
}

// Transition moves a run to the requested status or reports why it cannot.
func Transition(run *domain.PayrollRun, to domain.PayrollRunStatus) error {
	if _, known := transitions[to]; !known {
		return fmt.Errorf("unknown payroll run status %q", to)
	}
	if !CanTransition(run.Status, to) {
		return fmt.Errorf("payroll run cannot move from %s to %s", run.Status, to)
	}
	run.Status = to
	return nil
}

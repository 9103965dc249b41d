package payroll

import (
	"testing"

	"github.com/paylinq/workforce/backend/internal/domain"
)

func TestTransition_HappyPath(t *testing.T) {
	run := &domain.PayrollRun{Status: domain.PayrollRunStatusDraft}

	path := []domain.PayrollRunStatus{
		domain.PayrollRunStatusProcessing,
		domain.PayrollRunStatusReview,
		domain.PayrollRunStatusApproved,
		domain.PayrollRunStatusPaid,
	}
	for _, next := range path {
		if err := Transition(run, next); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}
	if run.Status != domain.PayrollRunStatusPaid {
		t.Errorf("final status %s", run.Status)
	}
}

func TestTransition_Illegal(t *testing.T) {
	cases := []struct {
		from, to domain.PayrollRunStatus
	}{
		{domain.PayrollRunStatusDraft, domain.PayrollRunStatusPaid},
		{domain.PayrollRunStatusDraft, domain.PayrollRunStatusApproved},
		{domain.PayrollRunStatusPaid, domain.PayrollRunStatusDraft},
		{domain.PayrollRunStatusCancelled, domain.PayrollRunStatusProcessing},
		{domain.PayrollRunStatusProcessing, domain.PayrollRunStatusApproved},
	}
	for _, c := range cases {
		run := &domain.PayrollRun{Status: c.from}
		if err := Transition(run, c.to); err == nil {
			t.Errorf("transition %s -> %s should fail", c.from, c.to)
		}
		if run.Status != c.from {
			t.Errorf("failed transition mutated status to %s", run.Status)
		}
	}
}

func TestTransition_ReviewReopensToDraft(t *testing.T) {
	run := &domain.PayrollRun{Status: domain.PayrollRunStatusReview}
	if err := Transition(run, domain.PayrollRunStatusDraft); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	run := &domain.PayrollRun{Status: domain.PayrollRunStatusDraft}
	if err := Transition(run, "archived"); err == nil {
		t.Error("unknown status accepted")
	}
}

package handler

import (
	"testing"
	"time"

	"github.com/paylinq/workforce/backend/internal/domain"
)

func TestSwapDecisionMail(t *testing.T) {
	shift := &domain.Shift{
		ID:        1,
		ShiftDate: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00",
		EndTime:   "17:00",
	}
	requester := &domain.Worker{ID: 7, FullName: "Dana Reyes", Email: "dana@example.com"}
	target := &domain.Worker{ID: 8, FullName: "Sam Okafor", Email: "sam@example.com"}

	// an approved swap notifies each worker at their own address
	for _, worker := range []*domain.Worker{requester, target} {
		msg := swapDecisionMail(worker, shift, domain.SwapStatusApproved)
		if msg.Type != "swap_decision" {
			t.Errorf("type = %q", msg.Type)
		}
		if msg.To != worker.Email {
			t.Errorf("to = %q, want %q", msg.To, worker.Email)
		}
		data, ok := msg.Data.(domain.SwapDecisionMailData)
		if !ok {
			t.Fatalf("data is %T", msg.Data)
		}
		if data.FullName != worker.FullName {
			t.Errorf("fullName = %q, want %q", data.FullName, worker.FullName)
		}
		if data.ShiftDate != "2026-03-02" || data.StartTime != "9:00 AM" || data.EndTime != "5:00 PM" {
			t.Errorf("shift fields %q %q %q", data.ShiftDate, data.StartTime, data.EndTime)
		}
		if data.Decision != string(domain.SwapStatusApproved) {
			t.Errorf("decision = %q", data.Decision)
		}
	}

	msg := swapDecisionMail(requester, shift, domain.SwapStatusRejected)
	data := msg.Data.(domain.SwapDecisionMailData)
	if data.Decision != string(domain.SwapStatusRejected) {
		t.Errorf("decision = %q", data.Decision)
	}
}

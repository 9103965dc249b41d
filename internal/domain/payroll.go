package domain

import "time"

type PayrollRunStatus string

const (
	PayrollRunStatusDraft      PayrollRunStatus = "draft"
	PayrollRunStatusProcessing PayrollRunStatus = "processing"
	PayrollRunStatusReview     PayrollRunStatus = "review"
	PayrollRunStatusApproved   PayrollRunStatus = "approved"
	PayrollRunStatusPaid       PayrollRunStatus = "paid"
	PayrollRunStatusCancelled  PayrollRunStatus = "cancelled"
)

type PayrollRun struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	PeriodStart time.Time        `json:"periodStart"`
	PeriodEnd   time.Time        `json:"periodEnd"`
	Currency    string           `json:"currency"`
	Status      PayrollRunStatus `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	Version     int32            `json:"-"`
}

// PayrollEntry is one worker's computed line in a run. All amounts are in
// minor units of the run currency.
type PayrollEntry struct {
	ID           int64  `json:"id"`
	PayrollRunID int64  `json:"payrollRunID"`
	WorkerID     int64  `json:"workerID"`
	Reference    string `json:"reference"`
	RegularMinutes  int   `json:"regularMinutes"`
	OvertimeMinutes int   `json:"overtimeMinutes"`
	GrossAmount     int64 `json:"grossAmount"`
	DeductionAmount int64 `json:"deductionAmount"`
	NetAmount       int64 `json:"netAmount"`
	Lines           []PayrollEntryLine `json:"lines"`
}

type PayrollEntryLine struct {
	ComponentCode string `json:"componentCode"`
	ComponentName string `json:"componentName"`
	Type          ComponentType `json:"type"`
	Amount        int64  `json:"amount"`
}

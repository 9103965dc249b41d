package domain

import "time"

type ComponentType string

const (
	ComponentTypeEarning   ComponentType = "earning"
	ComponentTypeDeduction ComponentType = "deduction"
)

type ComponentMethod string

const (
	// MethodFixed pays Amount once per period.
	MethodFixed ComponentMethod = "fixed"
	// MethodHourly pays Amount per worked hour.
	MethodHourly ComponentMethod = "hourly"
	// MethodPercentage applies Rate (basis points) to the gross earned so far.
	MethodPercentage ComponentMethod = "percentage"
)

type PayComponent struct {
	ID        int64           `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Type      ComponentType   `json:"type"`
	Method    ComponentMethod `json:"method"`
	Amount    int64           `json:"amount"` // minor units, unused for percentage
	Rate      int32           `json:"rate"`   // basis points, percentage only
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
	Version   int32           `json:"-"`
}

type PayStructure struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	WorkerTypeID int64          `json:"workerTypeID"`
	Components   []PayComponent `json:"components"`
	CreatedAt    time.Time      `json:"createdAt"`
	Version      int32          `json:"-"`
}

type WorkerType struct {
	ID                 int64   `json:"id"`
	Name               string  `json:"name"`
	OvertimeMultiplier float64 `json:"overtimeMultiplier"`
	// minutes per week before overtime kicks in; 0 means the payroll
	// default applies
	WeeklyOvertimeThreshold int       `json:"weeklyOvertimeThreshold"`
	CreatedAt               time.Time `json:"createdAt"`
	Version                 int32     `json:"-"`
}

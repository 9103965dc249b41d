package domain

import "time"

type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusApproved  SwapStatus = "approved"
	SwapStatusRejected  SwapStatus = "rejected"
	SwapStatusCancelled SwapStatus = "cancelled"
)

type ShiftSwap struct {
	ID                 int64      `json:"id"`
	ShiftID            int64      `json:"shiftID"`
	RequestingWorkerID int64      `json:"requestingWorkerID"`
	TargetWorkerID     int64      `json:"targetWorkerID"`
	Reason             string     `json:"reason"`
	Status             SwapStatus `json:"status"`
	DecidedBy          *int64     `json:"decidedBy"`
	DecidedAt          *time.Time `json:"decidedAt"`
	CreatedAt          time.Time  `json:"createdAt"`
	Version            int32      `json:"-"`
}

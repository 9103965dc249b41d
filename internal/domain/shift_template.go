package domain

import (
	"time"
)

type ShiftTemplateSlot struct {
	ID        int64   `json:"id"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Days      []int32 `json:"days"` // 1 = Monday ... 7 = Sunday
}

type ShiftTemplate struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	StationID     int64               `json:"stationID"`
	Slots         []ShiftTemplateSlot `json:"slots"`
	RequiredRoles []string            `json:"requiredRoles"`
	CreatedAt     time.Time           `json:"createdAt"`
	Version       int32               `json:"-"`
}

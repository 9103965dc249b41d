package domain

import (
	"time"
)

// AccountRole controls what a worker may do through the API,
// independent of the job roles they can cover on the floor.
type AccountRole string

const (
	RoleAdmin   AccountRole = "admin"
	RoleManager AccountRole = "manager"
	RoleStaff   AccountRole = "staff"
)

type Worker struct {
	ID           int64       `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	FullName     string      `json:"fullName"`
	Email        string      `json:"email"`
	AccountRole  AccountRole `json:"accountRole"`
	JobRoles     []string    `json:"jobRoles"`
	WorkerTypeID *int64      `json:"workerTypeID"`
	HourlyRate   int64       `json:"hourlyRate"` // minor units per hour
	Currency     string      `json:"currency"`
	IsActive     bool        `json:"isActive"`
	CreatedAt    time.Time   `json:"createdAt"`
	Version      int32       `json:"-"`
}

package projects

import "time"

// Project statuses accepted by the API.
const (
	StatusPlanned   = "PLANNED"
	StatusActive    = "ACTIVE"
	StatusOnHold    = "ON_HOLD"
	StatusCompleted = "COMPLETED"
)

// Project is a tracked initiative. Name is unique.
type Project struct {
	ID          int64
	Name        string
	Description string
	Status      string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
}

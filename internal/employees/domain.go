package employees

import "time"

// Employee is a directory record managed by the admin surface. Email is
// unique across the directory.
type Employee struct {
	ID         int64
	Name       string
	Email      string
	Department string
	Salary     float64
	CreatedAt  time.Time
}

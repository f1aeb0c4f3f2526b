package roles

import "time"

// Role groups permissions under a shared name. The permission edge set is an
// owned set of catalog references; updates replace it wholesale and become
// visible to every holder on their next authority resolution.
type Role struct {
	ID          int64
	Name        string
	Description string
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

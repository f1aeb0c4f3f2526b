package permissions

import "time"

// Permission represents an atomic capability identified by a unique name.
// The name is immutable once created; description and tags stay editable.
type Permission struct {
	ID          int64
	Name        string
	Description string
	Resource    string
	Action      string
	CreatedAt   time.Time
}

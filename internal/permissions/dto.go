package permissions

import "time"

type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	Resource    string `json:"resource" validate:"max=100"`
	Action      string `json:"action" validate:"max=100"`
}

type UpdatePermissionRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Resource    *string `json:"resource,omitempty" validate:"omitempty,max=100"`
	Action      *string `json:"action,omitempty" validate:"omitempty,max=100"`
}

type PermissionResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Resource    string    `json:"resource,omitempty"`
	Action      string    `json:"action,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toResponse(p Permission) PermissionResponse {
	return PermissionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Resource:    p.Resource,
		Action:      p.Action,
		CreatedAt:   p.CreatedAt,
	}
}

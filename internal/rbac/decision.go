// Package rbac gates protected operations on the authority set recovered
// from a verified bearer token.
package rbac

import (
	"fmt"

	"github.com/praetor-admin/praetor-admin/internal/shared"
)

// Authorize allows the operation iff required is an exact member of the
// claims' authority set. No hierarchy, no wildcards.
func Authorize(claims *shared.Claims, required string) error {
	if claims == nil {
		return fmt.Errorf("%w: no verified claims", shared.ErrPermissionDenied)
	}
	for _, authority := range claims.Authorities {
		if authority == required {
			return nil
		}
	}
	return fmt.Errorf("%w: requires %s", shared.ErrPermissionDenied, required)
}

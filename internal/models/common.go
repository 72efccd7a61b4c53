// internal/models/common.go
package models

// Role is the marketplace-wide user role. Role-restricted operations
// resolve it from the users collection on every call, not from the
// token alone.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

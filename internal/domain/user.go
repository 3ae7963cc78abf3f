package domain

// Role identifies what a dashboard user may do.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleVideoManager Role = "video_manager"
	RoleFinancial    Role = "financial"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleVideoManager, RoleFinancial:
		return true
	}
	return false
}

// Actor is the requester of an operation, as supplied by the session layer.
type Actor struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// HasRole reports whether the actor holds any of roles.
func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// SeesFinancials reports whether revenue figures may be shown to the actor.
func (a Actor) SeesFinancials() bool {
	return a.HasRole(RoleAdmin, RoleFinancial)
}

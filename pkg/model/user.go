package model

// Role identifies the kind of account a conversation belongs to. It is
// fixed for the lifetime of a conversation.
type Role string

const (
	RoleFarmer    Role = "farmer"
	RoleConsumer  Role = "consumer"
	RoleWarehouse Role = "warehouse"
	RoleAdmin     Role = "admin"
)

// Validate checks if the role is one of the known account roles
func (r Role) Validate() error {
	switch r {
	case RoleFarmer, RoleConsumer, RoleWarehouse, RoleAdmin:
		return nil
	default:
		return ErrUnknownRole
	}
}

// UserProfile is the read-only view of a user owned by the profile/auth
// subsystem. The engine only reads it for provenance and contextual
// defaults; it never writes back.
type UserProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Location string `json:"location"`
}

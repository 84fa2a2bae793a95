package state

// Role represents a type of privileged marketplace participant.
type Role byte

// Role enumeration.
const (
	// RoleOwner is the platform operator: it receives the platform fee
	// share and is the only account allowed to rotate the service role.
	RoleOwner Role = 1
	// RoleService is the only account allowed to create and register
	// collections.
	RoleService Role = 2
)

package domain

// UserRole represents a user's role in the system
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleInstructor UserRole = "instructor"
)

// User represents a system user. Identity management itself lives outside
// this service; the user record carries what the reservation rules need:
// ownership, notification address and role
type User struct {
	ID        int64
	Email     string
	Role      UserRole
	IsDeleted bool
}

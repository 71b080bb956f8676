package user

// User is the identity record supplied by the auth layer. This service
// trusts the verified user id from the JWT and only reads contact details
// for display.
type User struct {
	ID        int    `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

const RoleAdmin = "admin"

package auth

// Role is a front-desk login role. Both roles share the clinic's admin
// credential pair; what differs is where a successful login lands.
type Role string

const (
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
)

func (r Role) Valid() bool {
	return r == RoleDoctor || r == RoleReceptionist
}

// Session is the outcome of a successful login.
type Session struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
	Clinic      string `json:"clinic"`
	Role        Role   `json:"role"`
	ExpiresAt   int64  `json:"expiresAt"`
}

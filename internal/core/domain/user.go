package domain

// User is a platform account. Salon owners and employees are both users; each
// user owns at most one wallet.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
}

package domain

// Comment is an assistance request left by an employee for the admin console.
type Comment struct {
	ID        string `json:"id,omitempty"`
	Email     string `json:"email"`
	Comment   string `json:"comment"`
	Timestamp int64  `json:"timestamp"`
}

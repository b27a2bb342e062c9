package domain

// User is a read-only directory record owned by the user service. The two
// certificate summary fields are optional: the directory fills them in only
// when it knows about an upcoming certificate for the user.
type User struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Role            string `json:"role"`
	NextCertificate string `json:"next_certificate,omitempty"`
	DaysLeft        *int   `json:"days_left,omitempty"`
}

package domain

import "time"

type User struct {
	Phone     string    `db:"phone" json:"phone"`
	Name      *string   `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DisplayName falls back to the phone number for users registered through login.
func (u *User) DisplayName() string {
	if u.Name == nil || *u.Name == "" {
		return u.Phone
	}

	return *u.Name
}

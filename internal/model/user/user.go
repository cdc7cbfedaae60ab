// Package user holds the User entity, its Role enumeration and the
// request payloads accepted by the /users routes.
package user

// User is a row of the users table.
//
// PasswordHash only ever holds a bcrypt hash and is never serialized.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

// PublicUser is the representation returned to API clients.
type PublicUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Public strips the password hash.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
	}
}

// PublicUsers projects every user in users.
func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

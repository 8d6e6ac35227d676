package entity

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Role      Role      `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (u User) Equal(other User) bool {
	return u.ID == other.ID
}

// UserLoginData is the authenticated principal of a request.
type UserLoginData struct {
	ID        int64
	Username  string
	Email     string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
}

func (u UserLoginData) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanAccess reports whether the principal may act on data owned by userID.
func (u UserLoginData) CanAccess(userID int64) bool {
	return u.IsAdmin() || u.ID == userID
}

type UserPatch struct {
	Username *string
	Email    *string
	Password *string
	Role     *Role
}

func (p UserPatch) Apply(u *User) {
	if supplied(p.Username) {
		u.Username = *p.Username
	}
	if supplied(p.Email) {
		u.Email = *p.Email
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}

package user

import (
	"time"

	coreuser "github.com/frahmantamala/leave-management/internal/core/user"
	userDatamodel "github.com/frahmantamala/leave-management/internal/core/datamodel/user"
)

// User is a registered account. The hash never leaves the service in JSON.
type User struct {
	Username     string        `json:"username"`
	PasswordHash string        `json:"-"`
	Role         coreuser.Role `json:"role"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (u *User) Actor() coreuser.Actor {
	return coreuser.NewActor(u.Username, u.Role)
}

func (u *User) IsAdmin() bool {
	return u.Role == coreuser.RoleAdmin
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         coreuser.Role(u.Role),
		CreatedAt:    u.CreatedAt,
	}
}

package user

import (
	"strings"
	"time"

	errors "github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/core/common/validation"
	coreuser "github.com/frahmantamala/leave-management/internal/core/user"
)

const (
	MaxUsernameLength = 50
	// bcrypt ignores input beyond 72 bytes, so longer secrets are refused.
	MaxPasswordBytes = 72
)

// RegisterDTO is the registration payload.
type RegisterDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks every field and returns an INVALID_INPUT AppError listing the failures.
func (d RegisterDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).
		Required(errors.ErrCodeInvalidUsername).
		Check(func(value interface{}) bool {
			u := value.(string)
			return strings.TrimSpace(u) == u
		}, "username must not start or end with whitespace", errors.ErrCodeInvalidUsername).
		MaxLength(MaxUsernameLength, errors.ErrCodeInvalidUsername)
	v.Field("password", d.Password).
		Check(func(value interface{}) bool { return value.(string) != "" }, "password is required", errors.ErrCodeInvalidPassword).
		MaxBytes(MaxPasswordBytes, errors.ErrCodeInvalidPassword)
	v.Field("role", d.Role).
		Check(func(value interface{}) bool {
			_, err := coreuser.ParseRole(value.(string))
			return err == nil
		}, "role must be one of USER, ADMIN", errors.ErrCodeInvalidRole)
	return v.Validate()
}

type UserResponse struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

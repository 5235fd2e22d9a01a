package auth

import (
	errors "github.com/frahmantamala/leave-management/internal"
	"github.com/frahmantamala/leave-management/internal/core/common/validation"
	"github.com/frahmantamala/leave-management/internal/user"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

type LoginResponse struct {
	AuthTokens
	User user.UserResponse `json:"user"`
}

func (d LoginDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("username", d.Username).Required(errors.ErrCodeInvalidUsername)
	v.Field("password", d.Password).
		Check(func(value interface{}) bool { return value.(string) != "" }, "password is required", errors.ErrCodeInvalidPassword)
	return v.Validate()
}

func (d RefreshTokenDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("refresh_token", d.RefreshToken).Required(errors.ErrCodeInvalidToken)
	return v.Validate()
}

// Package user holds the identity values shared by the credential store and
// the leave ledger.
package user

import (
	"errors"
	"strings"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole accepts the canonical upper-case names, ignoring surrounding
// whitespace and letter case.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrUnknownRole
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated identity an operation runs on behalf of.
type Actor struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

func NewActor(username string, role Role) Actor {
	return Actor{Username: username, Role: role}
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

func (a Actor) IsAuthenticated() bool {
	return a.Username != "" && a.Role.Valid()
}

// Owns reports whether the actor is the given requester.
func (a Actor) Owns(requester string) bool {
	return a.IsAuthenticated() && a.Username == requester
}

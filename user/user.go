package user

import "dsmovie/errs"

var (
	// ErrAuthentication is returned when the acting principal cannot be
	// resolved: no session identity, or the identity maps to no user
	// record. Distinct from a resource not-found so the HTTP layer maps
	// it to 401 instead of 404.
	ErrAuthentication = errs.Errorf(errs.EUNAUTHORIZED, "user: invalid user")

	// ErrUserNotFound is returned by username lookups used during
	// authentication.
	ErrUserNotFound = errs.Errorf(errs.EUNAUTHORIZED, "user: user not found")
)

// Granted authorities.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User is a provisioned account. There is no insert path in this core;
// accounts are created out of band.
type User struct {
	ID           int64
	Name         string
	Username     string
	PasswordHash string
	Roles        []string
}

func (u User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Principal is the identity representation handed to the authentication
// boundary: one record per username with the full set of granted roles.
type Principal struct {
	Username     string
	PasswordHash string
	Roles        []string
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleRow is one row of the user-and-roles projection. A user with n
// roles yields n rows sharing username and password hash.
type RoleRow struct {
	Username     string
	PasswordHash string
	Role         string
}

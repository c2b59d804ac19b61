package user

import (
	"context"
	"errors"
)

type Service interface {
	Authenticated(ctx context.Context) (User, error)
	LoadPrincipalByUsername(ctx context.Context, username string) (Principal, error)
}

type Repository interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	SearchRolesByUsername(ctx context.Context, username string) ([]RoleRow, error)
}

// Resolver yields the username of the currently authenticated session,
// or an error when there is none.
type Resolver interface {
	CurrentUsername(ctx context.Context) (string, error)
}

type Usecase struct {
	r        Repository
	resolver Resolver
}

func NewUsecase(r Repository, resolver Resolver) *Usecase {
	return &Usecase{r: r, resolver: resolver}
}

// Authenticated resolves the acting user from the current session. Both
// a missing session and a session whose username matches no user record
// fail with ErrAuthentication; other storage failures propagate.
func (uc *Usecase) Authenticated(ctx context.Context) (User, error) {
	username, err := uc.resolver.CurrentUsername(ctx)
	if err != nil {
		return User{}, ErrAuthentication
	}

	u, err := uc.r.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrAuthentication
		}
		return User{}, err
	}
	return u, nil
}

// LoadPrincipalByUsername builds the principal consumed by the
// authentication boundary. The projection returns one row per granted
// role; rows are grouped into a single principal, and an empty result
// means the username is unknown.
func (uc *Usecase) LoadPrincipalByUsername(ctx context.Context, username string) (Principal, error) {
	rows, err := uc.r.SearchRolesByUsername(ctx, username)
	if err != nil {
		return Principal{}, err
	}
	if len(rows) == 0 {
		return Principal{}, ErrUserNotFound
	}

	p := Principal{
		Username:     rows[0].Username,
		PasswordHash: rows[0].PasswordHash,
	}
	for _, row := range rows {
		if row.Role == "" || p.HasRole(row.Role) {
			continue
		}
		p.Roles = append(p.Roles, row.Role)
	}
	return p, nil
}

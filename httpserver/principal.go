package httpserver

import (
	"context"

	"dsmovie/errs"
	"dsmovie/user"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type contextKey int

const usernameKey contextKey = iota

func withUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

func usernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok && username != ""
}

// ClaimsResolver implements user.Resolver over the request context
// populated by the JWT middleware.
type ClaimsResolver struct{}

func (ClaimsResolver) CurrentUsername(ctx context.Context) (string, error) {
	username, ok := usernameFromContext(ctx)
	if !ok {
		return "", errs.Errorf(errs.EUNAUTHORIZED, "no authenticated principal")
	}
	return username, nil
}

// jwtMiddleware validates the bearer token and stores the username claim
// in the request context, where ClaimsResolver picks it up.
func (s *Server) jwtMiddleware() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(s.JWTSecret),
		SigningMethod: "HS256",
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return
			}
			username, _ := claims["username"].(string)
			if username == "" {
				return
			}
			req := c.Request()
			c.SetRequest(req.WithContext(withUsername(req.Context(), username)))
		},
	})
}

// requireRole loads the caller's principal and rejects the request when
// the role is not granted. Must run after jwtMiddleware.
func (s *Server) requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			username, ok := usernameFromContext(ctx)
			if !ok {
				return user.ErrAuthentication
			}

			p, err := s.UserService.LoadPrincipalByUsername(ctx, username)
			if err != nil {
				return err
			}
			if !p.HasRole(role) {
				return errs.Errorf(errs.EUNAUTHORIZED, "role %s required", role)
			}
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Authorizer decides whether a path token grants admin access. Swapping in
// real authentication means replacing this predicate, not the call sites.
type Authorizer func(token string) bool

// SecretAuthorizer matches the token against a configured secret by exact
// string equality. This is an obscurity gate, not a security boundary: it
// mirrors the hidden-URL admin scheme and must not be mistaken for
// authentication.
func SecretAuthorizer(secret string) Authorizer {
	return func(token string) bool {
		return secret != "" && token == secret
	}
}

// AdminGate guards the admin route group. A mismatched token gets a plain
// 404, the API equivalent of redirecting away.
func AdminGate(authorize Authorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !authorize(c.Param("secret")) {
				return echo.NewHTTPError(http.StatusNotFound)
			}
			return next(c)
		}
	}
}

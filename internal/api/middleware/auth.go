package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/shopstack/portal/internal/core/domain"
	"github.com/shopstack/portal/internal/core/ports"
)

// SessionKey is the echo context key under which Auth stores the session.
const SessionKey = "session"

// Auth validates the bearer token, rejects revoked (logged-out) sessions, and
// injects an explicit domain.Session into the request context. Every failure
// mode is a uniform 401: the caller only learns it is unauthenticated.
func Auth(jwtSecret string, revoker ports.SessionRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sess, err := sessionFromClaims(claims)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			revoked, err := revoker.IsRevoked(c.Request().Context(), sess.TokenID)
			if err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session check unavailable")
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "session ended")
			}

			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}

// sessionFromClaims builds the per-request Session value from verified token
// claims. The role claim goes through ParseRole so a token minted with an
// unknown role never reaches a handler.
func sessionFromClaims(claims jwt.MapClaims) (*domain.Session, error) {
	username, _ := claims["username"].(string)
	rawRole, _ := claims["role"].(string)
	tokenID, _ := claims["jti"].(string)
	if username == "" || tokenID == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role, err := domain.ParseRole(rawRole)
	if err != nil {
		return nil, err
	}

	var expiresAt time.Time
	if exp, ok := claims["exp"].(float64); ok {
		expiresAt = time.Unix(int64(exp), 0).UTC()
	}

	return &domain.Session{
		Username:  username,
		Role:      role,
		TokenID:   tokenID,
		ExpiresAt: expiresAt,
	}, nil
}

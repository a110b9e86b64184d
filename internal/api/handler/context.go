package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopstack/portal/internal/api/middleware"
	"github.com/shopstack/portal/internal/core/domain"
)

// sessionFrom extracts the Session injected by the Auth middleware. Its
// presence proves the middleware ran; a gated handler reached without one is
// a routing mistake and fails closed as unauthenticated.
func sessionFrom(c echo.Context) (*domain.Session, error) {
	sess, ok := c.Get(middleware.SessionKey).(*domain.Session)
	if !ok || sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return sess, nil
}

package server

import (
	"strings"

	apperrors "github.com/hassansabag81/TecRoomV1/internal/errors"
	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// requireAuth verifies the bearer token and stores the claims in the request
// context. Validity is decided by signature and expiry alone; no database
// lookup happens here.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return apperrors.UnauthorizedError("Token de acceso requerido")
		}

		claims, err := s.verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			return apperrors.UnauthorizedError("Token inválido").WithField("cause", err.Error())
		}

		c.Set("accountID", claims.AccountID)
		c.Set("claims", claims)
		return next(c)
	}
}

// accountID extracts the authenticated account from the context.
func accountID(c echo.Context) (int64, error) {
	id, ok := c.Get("accountID").(int64)
	if !ok {
		return 0, apperrors.InternalError("missing account in request context", nil)
	}
	return id, nil
}

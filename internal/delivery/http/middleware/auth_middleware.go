// Package middleware provides HTTP middleware for the Echo server.
package middleware

import (
	"strings"

	deliverycontext "schedulemaker/internal/delivery/context"
	domainerrors "schedulemaker/internal/domain/errors"
	"schedulemaker/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for bearer-token authentication.
type AuthMiddleware struct {
	userUc usecase.UserUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(userUc usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{userUc: userUc}
}

// ExtractBearerToken pulls the token out of an Authorization header value.
// It returns false when the header is missing or not in "Bearer <token>" form.
func ExtractBearerToken(authHeader string) (string, bool) {
	if authHeader == "" {
		return "", false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", false
	}

	return tokenString, true
}

// Authenticate validates the access token and resolves it to an account.
// On success the account's email and ID are stored on the context for handlers
// to use. Any failure surfaces as ErrUnauthenticated so the error middleware
// renders a uniform 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString, ok := ExtractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrUnauthenticated.WrapMessage("missing or malformed Authorization header")
		}

		account, err := m.userUc.WhoAmI(c.Request().Context(), tokenString)
		if err != nil {
			return err
		}

		deliverycontext.SetSubject(c, account.Email)
		deliverycontext.SetAccountID(c, account.ID)

		return next(c)
	}
}

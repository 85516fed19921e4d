package middleware

import (
	"itemtracker/internal/dto"
	"itemtracker/internal/service"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const currentUserKey = "current_user"

// AuthMiddleware requires a bearer token issued by the user service and
// stores the verified user on the context.
func AuthMiddleware(userService service.UserService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: currentUserKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return userService.Verify(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
		},
	})
}

// CurrentUser returns the user set by AuthMiddleware, or nil.
func CurrentUser(c echo.Context) *dto.CurrentUser {
	user, _ := c.Get(currentUserKey).(*dto.CurrentUser)
	return user
}

// Owner is the email that scopes the caller's items.
func Owner(c echo.Context) string {
	if user := CurrentUser(c); user != nil {
		return user.Email
	}
	return ""
}

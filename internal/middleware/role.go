package middleware

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/hireboard/hireboard/internal/errors"
	"github.com/hireboard/hireboard/internal/models"
	"github.com/hireboard/hireboard/internal/respond"
	"github.com/hireboard/hireboard/internal/services"
)

// RequireRole lets the request through only for the given roles. Browsers
// are sent back to the home page with a message.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := checkRole(c, roles); err != nil {
			respond.Error(c, err, "/")
			return
		}
		c.Next()
	}
}

// RequireRoleJSON is RequireRole for endpoints that always answer 403 with a
// JSON body, whatever the client asked for.
func RequireRoleJSON(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := checkRole(c, roles); err != nil {
			apierrors.Respond(c, err)
			return
		}
		c.Next()
	}
}

func checkRole(c *gin.Context, roles []models.Role) error {
	actor, ok := GetActor(c)
	if !ok {
		return services.ErrPermissionDenied
	}
	return services.RequireRole(actor, roles...)
}
